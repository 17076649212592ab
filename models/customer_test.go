package models

import "testing"

func TestCreditDays_TermResolution(t *testing.T) {
	cases := []struct {
		terms      PaymentTerms
		customDays int
		expected   int
	}{
		{PaymentTermsNet15, 0, 15},
		{PaymentTermsNet30, 0, 30},
		{PaymentTermsNet45, 0, 45},
		{PaymentTermsNet60, 0, 60},
		{PaymentTermsDueEndOfMonth, 0, 30},
		{PaymentTermsDueEndOfNextMonth, 0, 30},
		{PaymentTermsDueOnReceipt, 0, 0},
		{PaymentTermsCustom, 21, 21},
		{PaymentTermsCustom, 0, 0},
	}
	for _, tc := range cases {
		c := Customer{CustomerPaymentTerms: tc.terms, CustomerPaymentTermsCustomDays: tc.customDays}
		if got := c.CreditDays(); got != tc.expected {
			t.Fatalf("CreditDays(%s, custom=%d) expected %d, got %d", tc.terms, tc.customDays, tc.expected, got)
		}
	}
}
