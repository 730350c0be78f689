package entities

// Resource names a balance field shared by accounts and guild banks
type Resource string

// Resources
const (
	ResourceGold           Resource = "gold"
	ResourceRubies         Resource = "rubies"
	ResourceSoulShards     Resource = "soulShards"
	ResourceFocusedShards  Resource = "focusedShards"
	ResourceTrainingPoints Resource = "trainingPoints"
	ResourceRunes          Resource = "runes"
	ResourcePetExp         Resource = "petExp"
)

// AllResources lists every resource
var AllResources = []Resource{
	ResourceGold,
	ResourceRubies,
	ResourceSoulShards,
	ResourceFocusedShards,
	ResourceTrainingPoints,
	ResourceRunes,
	ResourcePetExp,
}

// Valid reports whether r names a known resource
func (r Resource) Valid() bool {
	for _, known := range AllResources {
		if r == known {
			return true
		}
	}
	return false
}

// Currencies is a multi-resource balance. All fields stay within [0, MaxSafe].
type Currencies struct {
	Gold           Num `json:"gold"`
	Rubies         Num `json:"rubies"`
	SoulShards     Num `json:"soulShards"`
	FocusedShards  Num `json:"focusedShards"`
	TrainingPoints Num `json:"trainingPoints"`
	Runes          Num `json:"runes"`
	PetExp         Num `json:"petExp"`
}

func (c *Currencies) field(r Resource) *Num {
	switch r {
	case ResourceGold:
		return &c.Gold
	case ResourceRubies:
		return &c.Rubies
	case ResourceSoulShards:
		return &c.SoulShards
	case ResourceFocusedShards:
		return &c.FocusedShards
	case ResourceTrainingPoints:
		return &c.TrainingPoints
	case ResourceRunes:
		return &c.Runes
	case ResourcePetExp:
		return &c.PetExp
	}
	return nil
}

// Get returns the balance of r (0 for unknown resources)
func (c Currencies) Get(r Resource) Num {
	if f := c.field(r); f != nil {
		return *f
	}
	return 0
}

// Add credits amount of r, capping at MaxSafe
func (c *Currencies) Add(r Resource, amount Num) {
	if f := c.field(r); f != nil {
		*f = AddCapped(*f, amount)
	}
}

// Spend debits amount of r. It reports false and leaves the balance untouched
// when funds are short.
func (c *Currencies) Spend(r Resource, amount Num) bool {
	f := c.field(r)
	if f == nil || amount < 0 || *f < amount {
		return false
	}
	*f -= amount
	return true
}

// Credit adds every field of delta
func (c *Currencies) Credit(delta Currencies) {
	for _, r := range AllResources {
		c.Add(r, delta.Get(r))
	}
}

// Normalize clamps every field into [0, MaxSafe]
func (c *Currencies) Normalize() {
	for _, r := range AllResources {
		f := c.field(r)
		*f = f.Clamp()
	}
}

// IsZero reports whether every field is zero
func (c Currencies) IsZero() bool {
	return c == Currencies{}
}
