// Package seed carries the built-in river network: routes, stops, the boats
// every install starts with, and the Manaus departure ports. It also merges
// the seed boats into a persisted fleet.
package seed

import "tableflip.dev/riverline/pkg/model"

// PrimaryRouteID is the route new stops and the arrival logger default to.
const PrimaryRouteID = "solimoes"

// DefaultPort is the departure port preselected for new schedules.
const DefaultPort = "Manaus Moderna (Balsa Amarela)"

// Seeds is the reference data a store falls back to when nothing is persisted.
type Seeds struct {
	Routes []model.Route `yaml:"routes"`
	Stops  []model.Stop  `yaml:"stops"`
	Boats  []model.Boat  `yaml:"boats"`
	Ports  []string      `yaml:"ports"`
}

// Defaults returns a fresh copy of the built-in seeds.
func Defaults() Seeds {
	return Seeds{
		Routes: append([]model.Route(nil), routes...),
		Stops:  model.CloneStops(stops),
		Boats:  append([]model.Boat(nil), boats...),
		Ports:  append([]string(nil), ports...),
	}
}

// PrimaryRoute returns PrimaryRouteID when the seeds define it, else the first
// route, else "".
func (s Seeds) PrimaryRoute() string {
	for _, r := range s.Routes {
		if r.ID == PrimaryRouteID {
			return r.ID
		}
	}
	if len(s.Routes) > 0 {
		return s.Routes[0].ID
	}
	return ""
}

// DefaultPort returns the first configured port, or DefaultPort.
func (s Seeds) DefaultPort() string {
	if len(s.Ports) > 0 {
		return s.Ports[0]
	}
	return DefaultPort
}

// IsSeedBoat reports whether a boat with this exact name ships with the seeds.
func (s Seeds) IsSeedBoat(name string) bool {
	for _, b := range s.Boats {
		if b.Name == name {
			return true
		}
	}
	return false
}

var routes = []model.Route{
	{ID: "solimoes", Name: "Rio Solimões (Manaus-Tabatinga)", Color: "#0d9488"},
	{ID: "jurua", Name: "Rio Juruá (Manaus-Eirunepé)", Color: "#d97706"},
	{ID: "japura", Name: "Rio Japurá (Manaus-Limoeiro)", Color: "#2563eb"},
}

var trunk = []string{"solimoes", "jurua", "japura"}

// Map coordinates are schematic: x grows east towards Manaus, y grows south.
var stops = []model.Stop{
	{ID: "1", Name: "Manaus", DistanceKm: 0, RouteIDs: trunk, MapX: 90, MapY: 50},
	{ID: "2", Name: "Codajás", DistanceKm: 240, RouteIDs: trunk, MapX: 75, MapY: 52},
	{ID: "3", Name: "Coari", DistanceKm: 363, RouteIDs: trunk, MapX: 65, MapY: 55},
	{ID: "4", Name: "Tefé", DistanceKm: 523, RouteIDs: trunk, MapX: 50, MapY: 50},
	{ID: "5", Name: "Fonte Boa", DistanceKm: 678, RouteIDs: []string{"solimoes"}, MapX: 40, MapY: 50},
	{ID: "6", Name: "Jutaí", DistanceKm: 750, RouteIDs: []string{"solimoes"}, MapX: 30, MapY: 48},
	{ID: "7", Name: "Tonantins", DistanceKm: 875, RouteIDs: []string{"solimoes"}, MapX: 20, MapY: 48},
	{ID: "8", Name: "Sto. Ant. do Içá", DistanceKm: 880, RouteIDs: []string{"solimoes"}, MapX: 18, MapY: 45},
	{ID: "9", Name: "Amaturá", DistanceKm: 908, RouteIDs: []string{"solimoes"}, MapX: 12, MapY: 48},
	{ID: "10", Name: "S.P. de Olivença", DistanceKm: 964, RouteIDs: []string{"solimoes"}, MapX: 8, MapY: 48},
	{ID: "11", Name: "Tabatinga", DistanceKm: 1108, RouteIDs: []string{"solimoes"}, MapX: 2, MapY: 50},

	{ID: "12", Name: "Carauari", DistanceKm: 800, RouteIDs: []string{"jurua"}, MapX: 35, MapY: 70},
	{ID: "13", Name: "Itamarati", DistanceKm: 950, RouteIDs: []string{"jurua"}, MapX: 25, MapY: 78},
	{ID: "14", Name: "Eirunepé", DistanceKm: 1150, RouteIDs: []string{"jurua"}, MapX: 15, MapY: 85},

	{ID: "15", Name: "Maraã", DistanceKm: 700, RouteIDs: []string{"japura"}, MapX: 40, MapY: 30},
	{ID: "16", Name: "Japurá", DistanceKm: 900, RouteIDs: []string{"japura"}, MapX: 25, MapY: 20},
	{ID: "17", Name: "Limoeiro", DistanceKm: 1000, RouteIDs: []string{"japura"}, MapX: 15, MapY: 15},
}

var boats = []model.Boat{
	{ID: "b1", Name: "Lancha Glória de Deus", Capacity: 60, Contact: "9299999999"},
	{ID: "b2", Name: "Expresso Cristalina", Capacity: 80, Contact: "9298888888"},
	{ID: "b3", Name: "Cidade de Manaquiri"},
	{ID: "b4", Name: "Soberana"},
	{ID: "b5", Name: "Madame Crys"},
	{ID: "b6", Name: "Ajato 2000"},
	{ID: "b7", Name: "Crystal"},
	{ID: "b8", Name: "Kedson Araujo"},
	{ID: "b9", Name: "Lima de Abreu"},
}

var ports = []string{
	DefaultPort,
	"Porto de Manaus (Roadway)",
	"Porto da Ceasa",
	"Porto de São Raimundo",
	"Marina do Davi",
}
