package response

// BillStatusCounts holds per-status bill counts for an apartment
type BillStatusCounts struct {
	Unpaid  int64 `json:"unpaid"`
	Pending int64 `json:"pending"`
	Paid    int64 `json:"paid"`
}

// ApartmentDashboardResponse aggregates an apartment's financial position
type ApartmentDashboardResponse struct {
	ApartmentID           uint             `json:"apartment_id"`
	ApartmentName         string           `json:"apartment_name"`
	ActualBalance         int64            `json:"actual_balance"`
	NumberOfResidents     int              `json:"number_of_residents"`
	BillCounts            BillStatusCounts `json:"bill_counts"`
	UnpaidBillTotal       int64            `json:"unpaid_bill_total"`
	PendingBillTotal      int64            `json:"pending_bill_total"`
	TotalRemainingAmount  int64            `json:"total_remaining_amount"`
	PendingRemainingTotal int64            `json:"pending_remaining_total"`
}
