// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-broadside/pkg/input"
)

// Button names registered with engo.Input.
const (
	ButtonForward   = "forward"
	ButtonTurnLeft  = "turnLeft"
	ButtonTurnRight = "turnRight"
	ButtonFire      = "fire"
	ButtonRestart   = "restart"
)

var buttonKeys = map[input.Key]string{
	input.KeyForward:   ButtonForward,
	input.KeyTurnLeft:  ButtonTurnLeft,
	input.KeyTurnRight: ButtonTurnRight,
	input.KeyFire:      ButtonFire,
}

// InputSystem samples the keyboard once per frame and serves the result
// as an input.Source.
type InputSystem struct {
	pressed func(button string) bool

	held    input.KeySet
	restart bool
}

// NewInputSystem creates an input system reading engo.Input.
func NewInputSystem() *InputSystem {
	return NewInputSystemWith(func(button string) bool {
		return engo.Input.Button(button).Down()
	})
}

// NewInputSystemWith creates an input system that asks pressed whether a
// button is down.
func NewInputSystemWith(pressed func(button string) bool) *InputSystem {
	return &InputSystem{pressed: pressed}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
}

// Update samples every button.
func (is *InputSystem) Update(dt float32) {
	is.Sample()
}

// Sample reads the current button state.
func (is *InputSystem) Sample() {
	is.held = 0
	for key, button := range buttonKeys {
		if is.pressed(button) {
			is.held |= input.Keys(key)
		}
	}
	is.restart = is.pressed(ButtonRestart)
}

// Held implements input.Source.
func (is *InputSystem) Held(k input.Key) bool {
	return is.held.Held(k)
}

// Keys returns the keys held at the last sample.
func (is *InputSystem) Keys() input.KeySet {
	return is.held
}

// RestartRequested reports whether the restart button was down at the last
// sample.
func (is *InputSystem) RestartRequested() bool {
	return is.restart
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonForward, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonTurnLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonTurnRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonRestart, engo.KeyR)
}
