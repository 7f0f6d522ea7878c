package validator

import (
	"unicode/utf8"
)

func PostTitle(title string) bool {
	return utf8.RuneCountInString(title) >= 1 && utf8.RuneCountInString(title) <= 200
}

func PostBody(body string) bool {
	return utf8.RuneCountInString(body) <= 10000
}
