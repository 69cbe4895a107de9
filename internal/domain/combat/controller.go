package combat

// Controller picks a target and decides whether to pull the trigger each tick
type Controller interface {
	Target(self *Combatant) *Combatant
	Trigger(self *Combatant) bool
}

// FixedTargetController always engages one target until it is destroyed
type FixedTargetController struct {
	target *Combatant
}

func NewFixedTargetController(target *Combatant) *FixedTargetController {
	return &FixedTargetController{target: target}
}

func (c *FixedTargetController) Target(self *Combatant) *Combatant {
	if c.target == nil || c.target.destroyed {
		return nil
	}
	return c.target
}

func (c *FixedTargetController) Trigger(self *Combatant) bool {
	return c.Target(self) != nil
}

// PointDefenseController engages the nearest hostile seeker in flight and otherwise defers to
// its fallback controller
type PointDefenseController struct {
	battle   *Battle
	fallback Controller
}

func NewPointDefenseController(battle *Battle, fallback Controller) *PointDefenseController {
	return &PointDefenseController{battle: battle, fallback: fallback}
}

func (c *PointDefenseController) Target(self *Combatant) *Combatant {
	var nearest *Combatant
	best := 0.0
	for _, s := range c.battle.seekers {
		if s.state != SeekerFlying || s.body.destroyed || !self.IsHostileTo(s.body) {
			continue
		}
		d := self.position.DistanceTo(s.body.position)
		if nearest == nil || d < best {
			nearest, best = s.body, d
		}
	}
	if nearest != nil {
		return nearest
	}
	if c.fallback == nil {
		return nil
	}
	return c.fallback.Target(self)
}

func (c *PointDefenseController) Trigger(self *Combatant) bool {
	return c.Target(self) != nil
}
