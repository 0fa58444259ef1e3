/*
Package checks supports printed paycheck rendering: the spelled-out
amount line and the fixed US-letter page geometry.

LAYOUT:
  A check page is three fixed-height sections on US letter (11in tall):
  the check face on top, then two stubs. The heights are constants the
  renderer positions against; they must sum to the page height.
*/
package checks

import (
	"fmt"
	"strings"
)

// =============================================================================
// PAGE LAYOUT
// =============================================================================

// Section heights in inches. CheckHeight + StubOneHeight + StubTwoHeight
// must equal PageHeight.
const (
	PageHeight    = 11.0
	CheckHeight   = 3.5
	StubOneHeight = 3.5
	StubTwoHeight = 4.0
)

// =============================================================================
// AMOUNT IN WORDS
// =============================================================================

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion", "Quintillion"}

// AmountInWords spells out a cents amount the way the amount line of a
// check reads: "One Thousand Two Hundred Thirty-Four and 56/100". Zero
// spells as "Zero and 00/100"; a negative amount spells its absolute value.
func AmountInWords(cents int64) string {
	if cents < 0 {
		cents = -cents
	}

	dollars := cents / 100
	remainder := cents % 100

	var dollarWords string
	if dollars == 0 {
		dollarWords = "Zero"
	} else {
		dollarWords = spellInteger(dollars)
	}

	return fmt.Sprintf("%s and %02d/100", dollarWords, remainder)
}

// spellInteger spells a positive integer in groups of three digits, scale
// words between groups.
func spellInteger(n int64) string {
	var groups []string
	scale := 0
	for n > 0 {
		group := n % 1000
		if group > 0 {
			words := spellHundreds(int(group))
			if scaleWords[scale] != "" {
				words += " " + scaleWords[scale]
			}
			groups = append([]string{words}, groups...)
		}
		n /= 1000
		scale++
	}
	return strings.Join(groups, " ")
}

func spellHundreds(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		word := tensWords[n/10]
		if n%10 > 0 {
			word += "-" + onesWords[n%10]
		}
		parts = append(parts, word)
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
