package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateConfirmationNumber builds EXAM-<last six digits of the Unix
// millisecond clock>-<four random digits>. Uniqueness is not guaranteed.
func GenerateConfirmationNumber(now time.Time) string {
	return fmt.Sprintf("EXAM-%06d-%04d", now.UnixMilli()%1_000_000, 1000+rand.Intn(9000))
}

// clientRules maps exam-name substrings to a client, first match wins.
var clientRules = []struct {
	needles []string
	client  string
}{
	{[]string{"CELPIP"}, "CELPIP"},
	{[]string{"CMA"}, "CMA US"},
	{[]string{"PEARSON", "VUE"}, "PEARSON VUE"},
	{[]string{"PSI"}, "PSI"},
	{[]string{"PROMETRIC"}, "PROMETRIC"},
	{[]string{"ITTS"}, "ITTS"},
	{[]string{"TOEFL", "GRE", "ETS"}, "ETS"},
}

// DeriveClientName guesses the client from an exam name.
// An empty exam name yields an empty client.
func DeriveClientName(examName string) string {
	upper := strings.ToUpper(strings.TrimSpace(examName))
	if upper == "" {
		return ""
	}
	for _, rule := range clientRules {
		for _, needle := range rule.needles {
			if strings.Contains(upper, needle) {
				return rule.client
			}
		}
	}
	return "OTHER"
}

// DisplayClientName prefers the stored client, else derives one.
func DisplayClientName(clientName, examName string) string {
	if c := strings.TrimSpace(clientName); c != "" {
		return c
	}
	return DeriveClientName(examName)
}
