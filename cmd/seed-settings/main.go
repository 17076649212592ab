// seed-settings loads the scoring settings singleton from a YAML file.
// Omitted keys stay nil and fall back to the built-in defaults at run time.
//
// Example file:
//
//	analysis_period_days: 365
//	alert_on_downgrade: true
//	recency_days: [30, 60, 90, 180]
//	frequency_orders: [10, 5, 3, 2]
//	monetary_amounts: [50000, 25000, 10000, 2000]
//	payment_days: [-7, 7, 30, 60]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type settingsFile struct {
	AnalysisPeriodDays *int      `yaml:"analysis_period_days"`
	AlertOnDowngrade   *bool     `yaml:"alert_on_downgrade"`
	RecencyDays        []int     `yaml:"recency_days"`
	FrequencyOrders    []int     `yaml:"frequency_orders"`
	MonetaryAmounts    []float64 `yaml:"monetary_amounts"`
	PaymentDays        []int     `yaml:"payment_days"`
}

func main() {
	file := flag.String("file", "settings.yaml", "Path to the settings YAML file")
	flag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *file, err)
		os.Exit(1)
	}
	var sf settingsFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *file, err)
		os.Exit(1)
	}
	for name, ladder := range map[string]int{
		"recency_days":     len(sf.RecencyDays),
		"frequency_orders": len(sf.FrequencyOrders),
		"payment_days":     len(sf.PaymentDays),
	} {
		if ladder != 0 && ladder != 4 {
			fmt.Fprintf(os.Stderr, "%s must list exactly 4 thresholds (scores 5,4,3,2)\n", name)
			os.Exit(1)
		}
	}
	if n := len(sf.MonetaryAmounts); n != 0 && n != 4 {
		fmt.Fprintln(os.Stderr, "monetary_amounts must list exactly 4 thresholds (scores 5,4,3,2)")
		os.Exit(1)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	models.MigrateTable()

	var settings models.RFMSettings
	if err := db.WithContext(ctx).Order("id").First(&settings).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "load settings: %v\n", err)
			os.Exit(1)
		}
		settings = models.RFMSettings{}
	}

	settings.AnalysisPeriodDays = sf.AnalysisPeriodDays
	settings.AlertOnDowngrade = sf.AlertOnDowngrade
	if len(sf.RecencyDays) == 4 {
		settings.RecencyDays5 = &sf.RecencyDays[0]
		settings.RecencyDays4 = &sf.RecencyDays[1]
		settings.RecencyDays3 = &sf.RecencyDays[2]
		settings.RecencyDays2 = &sf.RecencyDays[3]
	}
	if len(sf.FrequencyOrders) == 4 {
		settings.FrequencyOrders5 = &sf.FrequencyOrders[0]
		settings.FrequencyOrders4 = &sf.FrequencyOrders[1]
		settings.FrequencyOrders3 = &sf.FrequencyOrders[2]
		settings.FrequencyOrders2 = &sf.FrequencyOrders[3]
	}
	if len(sf.MonetaryAmounts) == 4 {
		settings.MonetaryAmount5 = &sf.MonetaryAmounts[0]
		settings.MonetaryAmount4 = &sf.MonetaryAmounts[1]
		settings.MonetaryAmount3 = &sf.MonetaryAmounts[2]
		settings.MonetaryAmount2 = &sf.MonetaryAmounts[3]
	}
	if len(sf.PaymentDays) == 4 {
		settings.PaymentDays5 = &sf.PaymentDays[0]
		settings.PaymentDays4 = &sf.PaymentDays[1]
		settings.PaymentDays3 = &sf.PaymentDays[2]
		settings.PaymentDays2 = &sf.PaymentDays[3]
	}

	if err := settings.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "save settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("settings saved")
}
