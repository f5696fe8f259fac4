package npc

// Basic skill names. Every inhabitant carries the full catalog.
const (
	SkillFarming  = "Farming"
	SkillCombat   = "Combat"
	SkillCrafting = "Crafting"
	SkillTrade    = "Trade"
	SkillMedicine = "Medicine"
	SkillScouting = "Scouting"
)

// Advanced skill names.
const (
	SkillEngineering = "Engineering"
	SkillLore        = "Lore"
	SkillDiplomacy   = "Diplomacy"
	SkillLeadership  = "Leadership"
)

// BasicSkills and AdvancedSkills define the fixed skill catalog.
var (
	BasicSkills    = []string{SkillFarming, SkillCombat, SkillCrafting, SkillTrade, SkillMedicine, SkillScouting}
	AdvancedSkills = []string{SkillEngineering, SkillLore, SkillDiplomacy, SkillLeadership}
)

// MandatorySkill returns the level-1 skill granted by an archetype.
func MandatorySkill(t Type) string {
	switch t {
	case TypeFarmer:
		return SkillFarming
	case TypeSoldier:
		return SkillCombat
	case TypeCraftsman:
		return SkillCrafting
	case TypeMerchant:
		return SkillTrade
	case TypeHealer:
		return SkillMedicine
	case TypeScout:
		return SkillScouting
	case TypeEngineer:
		return SkillEngineering
	case TypeScholar:
		return SkillLore
	default:
		return SkillFarming
	}
}

// Skill tracks one capability: level, banked experience, and the fraction of
// leftover experience retained on level-up.
type Skill struct {
	Name           string  `json:"name"`
	Level          int     `json:"level"`
	Experience     int     `json:"experience"`
	Specialization float64 `json:"specialization"`
}

// newSkillSet builds the full catalog at level 0.
func newSkillSet() map[string]*Skill {
	set := make(map[string]*Skill, len(BasicSkills)+len(AdvancedSkills))
	for _, name := range BasicSkills {
		set[name] = &Skill{Name: name, Specialization: 0.5}
	}
	for _, name := range AdvancedSkills {
		set[name] = &Skill{Name: name, Specialization: 0.5}
	}
	return set
}

// MaxTotalSkillLevels caps the summed skill levels of one inhabitant.
// Skill level-ups are refused at the cap; banked experience is kept.
const MaxTotalSkillLevels = 10

// xpThreshold is the experience needed to advance past the given level.
func xpThreshold(level int) int {
	return (level + 1) * 100
}

// AddExperience grants experience to a named skill, applying level-ups. On
// each level-up the specialization fraction of the leftover experience is
// retained; the rest is discarded. Returns the number of skill levels gained.
func (n *NPC) AddExperience(skill string, amount int) int {
	s, ok := n.Skills[skill]
	if !ok || amount <= 0 {
		return 0
	}

	s.Experience += amount
	gained := 0
	for s.Experience >= xpThreshold(s.Level) && n.TotalSkillLevels() < MaxTotalSkillLevels {
		leftover := s.Experience - xpThreshold(s.Level)
		s.Level++
		s.Experience = int(float64(leftover) * s.Specialization)
		gained++
	}

	if gained > 0 {
		n.Level = 1 + n.TotalSkillLevels()/5
	}
	return gained
}
