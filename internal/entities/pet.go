package entities

// PetTier is an ordered companion tier
type PetTier string

// Pet tiers in ascending order
const (
	PetTierEgg    PetTier = "egg"
	PetTierBaby   PetTier = "baby"
	PetTierTeen   PetTier = "teen"
	PetTierAdult  PetTier = "adult"
	PetTierLegend PetTier = "legend"
	PetTierMythic PetTier = "mythic"
)

// PetTiers lists every tier in ascending order
var PetTiers = []PetTier{
	PetTierEgg,
	PetTierBaby,
	PetTierTeen,
	PetTierAdult,
	PetTierLegend,
	PetTierMythic,
}

// TierConfig holds the progression numbers for one tier
type TierConfig struct {
	// MaxExp is the experience needed to evolve. Zero means terminal.
	MaxExp     Num
	EvolveCost Num
	Multiplier float64
}

var tierConfigs = map[PetTier]TierConfig{
	PetTierEgg:    {MaxExp: 100, EvolveCost: 1_000, Multiplier: 1.0},
	PetTierBaby:   {MaxExp: 500, EvolveCost: 5_000, Multiplier: 1.5},
	PetTierTeen:   {MaxExp: 2_000, EvolveCost: 25_000, Multiplier: 2.25},
	PetTierAdult:  {MaxExp: 10_000, EvolveCost: 100_000, Multiplier: 3.5},
	PetTierLegend: {MaxExp: 50_000, EvolveCost: 500_000, Multiplier: 5.0},
	PetTierMythic: {Multiplier: 8.0},
}

// Config returns the tier's progression numbers
func (t PetTier) Config() (TierConfig, bool) {
	cfg, ok := tierConfigs[t]
	return cfg, ok
}

// Next returns the following tier. It reports false for mythic and unknown tiers.
func (t PetTier) Next() (PetTier, bool) {
	for i, known := range PetTiers {
		if known == t && i+1 < len(PetTiers) {
			return PetTiers[i+1], true
		}
	}
	return "", false
}

// PetStats is a companion's stat vector
type PetStats struct {
	Str            Num `json:"str"`
	Spd            Num `json:"spd"`
	Luck           Num `json:"luck"`
	ElementalPower Num `json:"elementalPower"`
}

// Total sums every pet stat
func (s PetStats) Total() Num {
	return s.Str + s.Spd + s.Luck + s.ElementalPower
}

// PetStat names one entry of PetStats
type PetStat string

// Pet stat names
const (
	PetStatStr            PetStat = "str"
	PetStatSpd            PetStat = "spd"
	PetStatLuck           PetStat = "luck"
	PetStatElementalPower PetStat = "elementalPower"
)

// Field returns a pointer to the named stat, or nil for unknown names
func (s *PetStats) Field(stat PetStat) *Num {
	switch stat {
	case PetStatStr:
		return &s.Str
	case PetStatSpd:
		return &s.Spd
	case PetStatLuck:
		return &s.Luck
	case PetStatElementalPower:
		return &s.ElementalPower
	}
	return nil
}

// Pet is a collectible companion owned by one account
type Pet struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Tier       PetTier   `json:"tier"`
	Exp        Num       `json:"exp"`
	Stats      PetStats  `json:"stats"`
	Affinities []Element `json:"affinities"`
}
