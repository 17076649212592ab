package models

import (
	"log"

	"github.com/mmdatafocus/insights_backend/config"
)

// MigrateTable creates/updates the tables this service owns. The ledger
// tables (customers, sales_invoices, customer_payments, products,
// stock_summaries) belong to the host application and are never migrated
// from here.
func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&RFMSettings{},
		&CustomerRFMScore{}, &RFMAlert{}, &RFMHistory{},
		&ItemAnalytics{}, &BasketRule{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
