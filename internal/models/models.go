package models

import (
	"fmt"
	"sort"
	"strings"
)

// Pharmacy is one administration site from the roster.
type Pharmacy struct {
	Name             string
	Address          string
	City             string
	State            string
	ZIP              string
	DEA              string
	NPI              string
	FormattedAddress string
	Row              int // 1-based row in the source file, header included
}

// PatientQuery is the destination the roster is ranked against.
type PatientQuery struct {
	Address string `json:"address"`
	State   string `json:"state"`
}

type RankedPharmacy struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	DEA           string `json:"dea"`
	NPI           string `json:"npi"`
	Distance      string `json:"distance"`
	DistanceValue int    `json:"distanceValue"` // meters
}

// RankedHeaders are the column names used when a ranked list is rendered or exported.
var RankedHeaders = []string{"name", "address", "dea", "npi", "distance", "distanceValue"}

func (r RankedPharmacy) Fields() []string {
	return []string{r.Name, r.Address, r.DEA, r.NPI, r.Distance, fmt.Sprintf("%d", r.DistanceValue)}
}

// FormatAddress builds the single-line "street, city, state zip" layout the
// distance service geocodes.
func FormatAddress(street, city, state, zip string) string {
	return fmt.Sprintf("%s, %s, %s %s", street, city, state, zip)
}

func MatchesState(p Pharmacy, state string) bool {
	return strings.EqualFold(strings.TrimSpace(p.State), strings.TrimSpace(state))
}

func HasState(pharmacies []Pharmacy, state string) bool {
	for _, p := range pharmacies {
		if MatchesState(p, state) {
			return true
		}
	}
	return false
}

// FilterByState keeps the pharmacies in state, preserving roster order.
func FilterByState(pharmacies []Pharmacy, state string) []Pharmacy {
	var out []Pharmacy
	for _, p := range pharmacies {
		if MatchesState(p, state) {
			out = append(out, p)
		}
	}
	return out
}

// States returns the distinct upper-cased state codes in the roster.
func States(pharmacies []Pharmacy) []string {
	seen := make(map[string]struct{})
	states := []string{}
	for _, p := range pharmacies {
		s := strings.ToUpper(strings.TrimSpace(p.State))
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}
