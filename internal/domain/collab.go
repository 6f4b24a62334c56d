package domain

// Records below are owned by the chat, payment, tracking and support
// collaborators. The estimate engine passes them through unchanged.

type ChatMessage struct {
	Sender    Sender `json:"sender" yaml:"sender"`
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

type PaymentMilestone struct {
	Milestone  string          `json:"milestone" yaml:"milestone"`
	Percentage float64         `json:"percentage" yaml:"percentage"`
	Amount     float64         `json:"amount" yaml:"amount"`
	Status     MilestoneStatus `json:"status" yaml:"status"`
}

type TimelineEvent struct {
	Stage        string         `json:"stage" yaml:"stage"`
	ExpectedDate string         `json:"expectedDate" yaml:"expectedDate"`
	ActualDate   string         `json:"actualDate,omitempty" yaml:"actualDate,omitempty"`
	Status       TimelineStatus `json:"status" yaml:"status"`
}

type WeeklyUpdate struct {
	Date          string   `json:"date" yaml:"date"`
	EngineerNotes string   `json:"engineerNotes" yaml:"engineerNotes"`
	Photos        []string `json:"photos" yaml:"photos"`
	Videos        []string `json:"videos,omitempty" yaml:"videos,omitempty"`
	MaterialLogs  string   `json:"materialLogs" yaml:"materialLogs"`
	UserNotes     string   `json:"userNotes,omitempty" yaml:"userNotes,omitempty"`
}

type TicketActivity struct {
	Update    string `json:"update" yaml:"update"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

type SupportTicket struct {
	ID                 string           `json:"id" yaml:"id"`
	Subject            string           `json:"subject" yaml:"subject"`
	Category           TicketCategory   `json:"category" yaml:"category"`
	Status             TicketStatus     `json:"status" yaml:"status"`
	AssignedTo         string           `json:"assignedTo" yaml:"assignedTo"`
	ExpectedResolution string           `json:"expectedResolution" yaml:"expectedResolution"`
	Activity           []TicketActivity `json:"activity" yaml:"activity"`
}

type SnagListItem struct {
	Description string     `json:"description" yaml:"description"`
	Status      SnagStatus `json:"status" yaml:"status"`
}
