package validator

import (
	"unicode/utf8"
)

func PlanName(name string) bool {
	return utf8.RuneCountInString(name) >= 3 && utf8.RuneCountInString(name) <= 100
}

func PlanDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 2000
}
