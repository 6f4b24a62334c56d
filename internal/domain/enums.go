package domain

type SectionName string

const (
	SectionStructure     SectionName = "Structure"
	SectionMaterials     SectionName = MaterialsSection
	SectionLabour        SectionName = "Labour"
	SectionElectrical    SectionName = "Electrical"
	SectionPlumbing      SectionName = "Plumbing"
	SectionFinishing     SectionName = "Finishing"
	SectionMiscellaneous SectionName = "Miscellaneous"
)

type ConstructionQuality string

const (
	QualityBasic    ConstructionQuality = "Basic"
	QualityStandard ConstructionQuality = "Standard"
	QualityPremium  ConstructionQuality = "Premium"
	QualityEco      ConstructionQuality = "Eco-Friendly"
	QualityLuxury   ConstructionQuality = "Luxury"
)

// ValidQualities is the canonical set of accepted construction quality strings.
var ValidQualities = map[string]bool{
	"Basic": true, "Standard": true, "Premium": true, "Eco-Friendly": true, "Luxury": true,
}

type KitchenType string

const (
	KitchenStandard KitchenType = "Standard"
	KitchenModular  KitchenType = "Modular"
)

type Sender string

const (
	SenderUser    Sender = "user"
	SenderAdvisor Sender = "advisor"
)

type MilestoneStatus string

const (
	MilestoneCompleted MilestoneStatus = "Completed"
	MilestoneDue       MilestoneStatus = "Due"
	MilestonePending   MilestoneStatus = "Pending"
)

type PaymentStatus string

const (
	PaymentPendingBooking PaymentStatus = "Pending Booking"
	PaymentBookingPaid    PaymentStatus = "Booking Paid"
	PaymentFullyPaid      PaymentStatus = "Fully Paid"
)

type TimelineStatus string

const (
	TimelineCompleted  TimelineStatus = "Completed"
	TimelineInProgress TimelineStatus = "In Progress"
	TimelinePending    TimelineStatus = "Pending"
	TimelineDelayed    TimelineStatus = "Delayed"
)

type TicketCategory string

const (
	TicketMaterial    TicketCategory = "Material"
	TicketWorkQuality TicketCategory = "Work Quality"
	TicketDelay       TicketCategory = "Delay"
	TicketSafety      TicketCategory = "Safety"
	TicketOther       TicketCategory = "Other"
)

// ValidTicketCategories is the canonical set of accepted ticket categories.
var ValidTicketCategories = map[string]bool{
	"Material": true, "Work Quality": true, "Delay": true, "Safety": true, "Other": true,
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketAssigned   TicketStatus = "Assigned"
	TicketInProgress TicketStatus = "In Progress"
	TicketResolved   TicketStatus = "Resolved"
)

type SnagStatus string

const (
	SnagReported SnagStatus = "Reported"
	SnagFixed    SnagStatus = "Fixed"
	SnagVerified SnagStatus = "Verified"
)
