package domain

// Intake is the wizard data a plan is generated from.
type Intake struct {
	Location            string              `json:"location" yaml:"location" validate:"required"`
	PlotArea            float64             `json:"plotArea" yaml:"plotArea" validate:"gt=0"`
	Floors              int                 `json:"floors" yaml:"floors" validate:"gte=1,lte=10"`
	IsDuplex            bool                `json:"isDuplex" yaml:"isDuplex"`
	Bedrooms            int                 `json:"bedrooms" yaml:"bedrooms" validate:"gte=0"`
	Bathrooms           int                 `json:"bathrooms" yaml:"bathrooms" validate:"gte=0"`
	AdditionalRooms     []string            `json:"additionalRooms,omitempty" yaml:"additionalRooms,omitempty"`
	ConstructionQuality ConstructionQuality `json:"constructionQuality" yaml:"constructionQuality"`
	FoundationType      string              `json:"foundationType,omitempty" yaml:"foundationType,omitempty"`
	WallType            string              `json:"wallType,omitempty" yaml:"wallType,omitempty"`
	FlooringType        string              `json:"flooringType,omitempty" yaml:"flooringType,omitempty"`
	HasFalseCeiling     bool                `json:"hasFalseCeiling" yaml:"hasFalseCeiling"`
	KitchenType         KitchenType         `json:"kitchenType,omitempty" yaml:"kitchenType,omitempty"`
	DoorWindowMaterial  string              `json:"doorWindowMaterial,omitempty" yaml:"doorWindowMaterial,omitempty"`
	ElectricalSpec      string              `json:"electricalSpec,omitempty" yaml:"electricalSpec,omitempty"`
	HasSump             bool                `json:"hasSump" yaml:"hasSump"`
	HasSolar            bool                `json:"hasSolar" yaml:"hasSolar"`
	HasCompoundWall     bool                `json:"hasCompoundWall" yaml:"hasCompoundWall"`
	AdditionalNotes     string              `json:"additionalNotes,omitempty" yaml:"additionalNotes,omitempty"`
}

// DefaultIntake returns the wizard's starting values.
func DefaultIntake() Intake {
	return Intake{
		Location:            "Bengaluru",
		PlotArea:            1200,
		Floors:              2,
		Bedrooms:            3,
		Bathrooms:           2,
		ConstructionQuality: QualityStandard,
		FoundationType:      "Standard Raft",
		WallType:            "Red Bricks",
		FlooringType:        "Vitrified Tiles",
		KitchenType:         KitchenModular,
		AdditionalRooms:     []string{"Pooja Room", "Store Room"},
		HasFalseCeiling:     true,
		HasSump:             true,
		HasCompoundWall:     true,
		DoorWindowMaterial:  "Teak Wood Frame",
		ElectricalSpec:      "Standard (ISI Brands)",
	}
}

// BuiltUpArea is plot area times floor count.
func (in Intake) BuiltUpArea() float64 {
	return in.PlotArea * float64(in.Floors)
}
