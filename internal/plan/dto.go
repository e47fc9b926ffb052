// AngelaMos | 2026
// dto.go

package plan

type PlanTypeResponse struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	MaxHouseholdMembers *int    `json:"max_household_members"`
	MaxTasks            *int    `json:"max_tasks"`
	PriceMonthly        float64 `json:"price_monthly"`
	PriceYearly         float64 `json:"price_yearly"`
}

type UsageResponse struct {
	UsageType    string `json:"usage_type"`
	CurrentValue int    `json:"current_value"`
	MaxValue     *int   `json:"max_value"`
	UsageDate    string `json:"usage_date"`
}

func ToPlanTypeResponse(p *PlanType) PlanTypeResponse {
	return PlanTypeResponse{
		ID:                  p.ID,
		Name:                p.Name,
		MaxHouseholdMembers: p.MaxHouseholdMembers,
		MaxTasks:            p.MaxTasks,
		PriceMonthly:        p.PriceMonthly,
		PriceYearly:         p.PriceYearly,
	}
}

func ToPlanTypeResponseList(planTypes []PlanType) []PlanTypeResponse {
	responses := make([]PlanTypeResponse, 0, len(planTypes))
	for _, p := range planTypes {
		responses = append(responses, ToPlanTypeResponse(&p))
	}
	return responses
}

func ToUsageResponse(u *Usage) UsageResponse {
	return UsageResponse{
		UsageType:    u.UsageType,
		CurrentValue: u.CurrentValue,
		MaxValue:     u.MaxValue,
		UsageDate:    u.UsageDate.Format("2006-01-02"),
	}
}

func ToUsageResponseList(usage []Usage) []UsageResponse {
	responses := make([]UsageResponse, 0, len(usage))
	for _, u := range usage {
		responses = append(responses, ToUsageResponse(&u))
	}
	return responses
}
