package models

import "fmt"

// Province is one of the DRC's first-level administrative divisions.
// AdminCode is the ISO 3166-2 subdivision code; GFWAdminID is the
// identifier Global Forest Watch uses for the same division.
type Province struct {
	Name       string `json:"name" bson:"name"`
	AdminCode  string `json:"admin_code" bson:"admin_code"`
	GFWAdminID string `json:"gfw_admin_id" bson:"gfw_admin_id"`
}

// provinceRegistry lists the 29 recognized DRC provinces: the eleven
// pre-2015 divisions kept for historical datasets plus the provinces of the
// 2015 administrative reform. Order is stable and is the order Provinces()
// returns.
var provinceRegistry = []Province{
	{Name: "Kinshasa", AdminCode: "CD-KN", GFWAdminID: "CD.1"},
	{Name: "Bas-Congo", AdminCode: "CD-BC", GFWAdminID: "CD.2"},
	{Name: "Bandundu", AdminCode: "CD-BN", GFWAdminID: "CD.3"},
	{Name: "Équateur", AdminCode: "CD-EQ", GFWAdminID: "CD.4"},
	{Name: "Province Orientale", AdminCode: "CD-OR", GFWAdminID: "CD.5"},
	{Name: "Nord-Kivu", AdminCode: "CD-NK", GFWAdminID: "CD.6"},
	{Name: "Sud-Kivu", AdminCode: "CD-SK", GFWAdminID: "CD.7"},
	{Name: "Maniema", AdminCode: "CD-MA", GFWAdminID: "CD.8"},
	{Name: "Katanga", AdminCode: "CD-KA", GFWAdminID: "CD.9"},
	{Name: "Kasaï-Oriental", AdminCode: "CD-KE", GFWAdminID: "CD.10"},
	{Name: "Kasaï-Occidental", AdminCode: "CD-KW", GFWAdminID: "CD.11"},
	{Name: "Kongo Central", AdminCode: "CD-KC", GFWAdminID: "CD.12"},
	{Name: "Kwango", AdminCode: "CD-KG", GFWAdminID: "CD.13"},
	{Name: "Kwilu", AdminCode: "CD-KL", GFWAdminID: "CD.14"},
	{Name: "Mai-Ndombe", AdminCode: "CD-MN", GFWAdminID: "CD.15"},
	{Name: "Sankuru", AdminCode: "CD-SA", GFWAdminID: "CD.16"},
	{Name: "Lomami", AdminCode: "CD-LO", GFWAdminID: "CD.17"},
	{Name: "Lualaba", AdminCode: "CD-LU", GFWAdminID: "CD.18"},
	{Name: "Haut-Lomami", AdminCode: "CD-HL", GFWAdminID: "CD.19"},
	{Name: "Haut-Katanga", AdminCode: "CD-HK", GFWAdminID: "CD.20"},
	{Name: "Tanganyika", AdminCode: "CD-TA", GFWAdminID: "CD.21"},
	{Name: "Haut-Uele", AdminCode: "CD-HU", GFWAdminID: "CD.22"},
	{Name: "Bas-Uele", AdminCode: "CD-BU", GFWAdminID: "CD.23"},
	{Name: "Ituri", AdminCode: "CD-IT", GFWAdminID: "CD.24"},
	{Name: "Tshopo", AdminCode: "CD-TO", GFWAdminID: "CD.25"},
	{Name: "Mongala", AdminCode: "CD-MO", GFWAdminID: "CD.26"},
	{Name: "Nord-Ubangi", AdminCode: "CD-NU", GFWAdminID: "CD.27"},
	{Name: "Sud-Ubangi", AdminCode: "CD-SU", GFWAdminID: "CD.28"},
	{Name: "Tshuapa", AdminCode: "CD-TU", GFWAdminID: "CD.29"},
}

var provinceByName = func() map[string]Province {
	m := make(map[string]Province, len(provinceRegistry))
	for _, p := range provinceRegistry {
		m[p.Name] = p
	}
	return m
}()

// LookupProvince resolves a province by its exact name. Matching is
// case-sensitive; unrecognized names fail with ErrUnknownProvince.
func LookupProvince(name string) (Province, error) {
	p, ok := provinceByName[name]
	if !ok {
		return Province{}, fmt.Errorf("%w: %q", ErrUnknownProvince, name)
	}
	return p, nil
}

// Provinces returns all registered provinces in registry-definition order.
// The returned slice is a copy; callers may mutate it freely.
func Provinces() []Province {
	out := make([]Province, len(provinceRegistry))
	copy(out, provinceRegistry)
	return out
}
