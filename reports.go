package capsim

// MonthlyRow aggregates the weekly records of one calendar month.
type MonthlyRow struct {
	// Month is the first day of the calendar month.
	Month Date
	// Weeks is the number of weekly records stamped in that month.
	Weeks int
	// Profit, Vault and Spend are the month's sums.
	Profit Money
	Vault  Money
	Spend  Money
	// EndPot is the pot after the month's last week.
	EndPot Money
}

// Months groups the records by calendar month, chronologically. Weeks are
// stamped on Mondays, so a month owns the weeks whose Monday falls in it.
func (r *Result) Months() []MonthlyRow {
	var rows []MonthlyRow
	for _, rec := range r.Records {
		month := rec.Date.BeginOfMonth()
		if len(rows) == 0 || rows[len(rows)-1].Month != month {
			zero := M(0, r.Params.Currency())
			rows = append(rows, MonthlyRow{Month: month, Profit: zero, Vault: zero, Spend: zero})
		}
		row := &rows[len(rows)-1]
		row.Weeks++
		row.Profit = row.Profit.Add(rec.Profit)
		row.Vault = row.Vault.Add(rec.VaultDelta)
		row.Spend = row.Spend.Add(rec.SpendDelta)
		row.EndPot = rec.PotAfter
	}
	return rows
}
