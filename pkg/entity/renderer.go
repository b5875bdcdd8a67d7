package entity

// Renderer draws arena entities
type Renderer interface {
	RenderCraft(craft *Craft)
	RenderRock(rock *Rock)
	RenderProjectile(projectile *Projectile)
	Clear()
	Present()
}
