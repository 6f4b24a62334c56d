package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
)

const planSystemPrompt = `You are an expert construction project planner for the Indian market.
You turn a homeowner's wizard answers into a complete, itemised construction estimate.
All costs are in INR and MUST reflect current market rates in the given city.

You MUST output ONLY a JSON object with these fields:
{
  "id": "string",
  "totalCost": number,
  "costPerSqFt": number,
  "budgetBreakdown": [
    {"sectionName": "Structure|Materials|Labour|Electrical|Plumbing|Finishing|Miscellaneous",
     "totalCost": number,
     "items": [{"item": "string", "cost": number, "details": "string",
                "material": "material name when the item prices one material",
                "floorBreakdown": [{"floor": "Foundation|Ground Floor|First Floor|...", "cost": number}]}]}
  ],
  "materialQuantities": [
    {"material": "Cement", "quantity": number, "unit": "bags", "unitPrice": number, "floor": 0}
  ],
  "chatHistory": [{"sender": "advisor", "text": "string", "timestamp": "ISO-8601"}],
  "paymentSchedule": [{"milestone": "string", "percentage": number, "amount": number, "status": "Completed|Due|Pending"}],
  "paymentStatus": "Pending Booking",
  "timeline": [{"stage": "string", "expectedDate": "string", "status": "Completed|In Progress|Pending|Delayed"}],
  "weeklyUpdates": [{"date": "YYYY-MM-DD", "engineerNotes": "string", "photos": ["url"], "materialLogs": "string"}],
  "supportTickets": [],
  "snagList": [{"description": "string", "status": "Reported|Fixed|Verified"}]
}

Rules:
- Items such as Brickwork, Concrete Work, Flooring and Plastering carry a floorBreakdown.
- The first payment milestone is "Booking Amount" (10% of total) with status "Due"; all others are "Pending".
- The first timeline stage is "In Progress"; the others are "Pending".
- Quantities of Cement, Steel, Bricks, Sand and Aggregate are given per floor: floor 0 is the
  foundation, floor 1 the ground floor, and so on up to the number of floors.
- Every material entry has a unitPrice. Quantities in bags are whole numbers.
- Every material has exactly one item in the Materials section whose "material" field names it.
- Output JSON only, with no text before or after it.`

func buildPlanPrompt(in domain.Intake) string {
	var b strings.Builder
	b.WriteString("## Wizard Specifications\n")
	fmt.Fprintf(&b, "- Location: %s\n", in.Location)
	fmt.Fprintf(&b, "- Plot Area: %g sq ft\n", in.PlotArea)
	fmt.Fprintf(&b, "- Floors: %d, Duplex: %t\n", in.Floors, in.IsDuplex)
	fmt.Fprintf(&b, "- Rooms: %d Bed, %d Bath, Additional: %s\n", in.Bedrooms, in.Bathrooms, strings.Join(in.AdditionalRooms, ", "))
	fmt.Fprintf(&b, "- Quality: %s\n", in.ConstructionQuality)
	fmt.Fprintf(&b, "- Structure: Foundation: %s, Walls: %s\n", in.FoundationType, in.WallType)
	fmt.Fprintf(&b, "- Finishing: Flooring: %s, Kitchen: %s, Doors/Windows: %s, False Ceiling: %t\n",
		in.FlooringType, in.KitchenType, in.DoorWindowMaterial, in.HasFalseCeiling)
	fmt.Fprintf(&b, "- Utilities: Electrical: %s, Sump: %t, Solar: %t, Compound Wall: %t\n",
		in.ElectricalSpec, in.HasSump, in.HasSolar, in.HasCompoundWall)
	if in.AdditionalNotes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", in.AdditionalNotes)
	}
	fmt.Fprintf(&b, "\nBase every cost on %s market rates. Break material quantities down for floors 0 to %d.\n",
		in.Location, in.Floors)
	return b.String()
}
