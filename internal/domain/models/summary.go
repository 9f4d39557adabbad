package models

import "time"

// DailySummary represents the end-of-day rollup stored in MongoDB by the
// reporting scheduler.
type DailySummary struct {
	Date          time.Time `bson:"date" json:"date"`
	EggsAdded     int       `bson:"eggs_added" json:"eggs_added"`
	EggsSold      int       `bson:"eggs_sold" json:"eggs_sold"`
	RemainingEggs int       `bson:"remaining_eggs" json:"remaining_eggs"`
	SalesRetained int       `bson:"sales_retained" json:"sales_retained"`
	OpenDebts     int       `bson:"open_debts" json:"open_debts"`
	CashOnHand    float64   `bson:"cash_on_hand" json:"cash_on_hand"`
	TotalDebt     float64   `bson:"total_debt" json:"total_debt"`
	NetCash       float64   `bson:"net_cash" json:"net_cash"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
