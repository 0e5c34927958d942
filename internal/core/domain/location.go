package domain

import "errors"

var ErrRegionNotFound = errors.New("region not found")

// Region is a Chilean administrative region. The table is static
// reference data compiled into the binary.
type Region struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Roman  string `json:"roman"` // ordinal in roman numerals, "RM" for the capital
}

// Commune is a Chilean commune belonging to one region.
type Commune struct {
	ID       int    `json:"id"`
	RegionID int    `json:"region_id"`
	Name     string `json:"name"`
}

// Regions lists the sixteen Chilean regions in official order.
var Regions = []Region{
	{ID: 1, Name: "Arica y Parinacota", Roman: "XV"},
	{ID: 2, Name: "Tarapacá", Roman: "I"},
	{ID: 3, Name: "Antofagasta", Roman: "II"},
	{ID: 4, Name: "Atacama", Roman: "III"},
	{ID: 5, Name: "Coquimbo", Roman: "IV"},
	{ID: 6, Name: "Valparaíso", Roman: "V"},
	{ID: 7, Name: "Metropolitana de Santiago", Roman: "RM"},
	{ID: 8, Name: "Libertador General Bernardo O'Higgins", Roman: "VI"},
	{ID: 9, Name: "Maule", Roman: "VII"},
	{ID: 10, Name: "Ñuble", Roman: "XVI"},
	{ID: 11, Name: "Biobío", Roman: "VIII"},
	{ID: 12, Name: "La Araucanía", Roman: "IX"},
	{ID: 13, Name: "Los Ríos", Roman: "XIV"},
	{ID: 14, Name: "Los Lagos", Roman: "X"},
	{ID: 15, Name: "Aysén del General Carlos Ibáñez del Campo", Roman: "XI"},
	{ID: 16, Name: "Magallanes y de la Antártica Chilena", Roman: "XII"},
}

// Communes lists the communes served by the business, keyed to Regions.
var Communes = []Commune{
	{ID: 101, RegionID: 1, Name: "Arica"},
	{ID: 102, RegionID: 1, Name: "Putre"},
	{ID: 201, RegionID: 2, Name: "Iquique"},
	{ID: 202, RegionID: 2, Name: "Alto Hospicio"},
	{ID: 301, RegionID: 3, Name: "Antofagasta"},
	{ID: 302, RegionID: 3, Name: "Calama"},
	{ID: 303, RegionID: 3, Name: "Tocopilla"},
	{ID: 401, RegionID: 4, Name: "Copiapó"},
	{ID: 402, RegionID: 4, Name: "Vallenar"},
	{ID: 501, RegionID: 5, Name: "La Serena"},
	{ID: 502, RegionID: 5, Name: "Coquimbo"},
	{ID: 503, RegionID: 5, Name: "Ovalle"},
	{ID: 601, RegionID: 6, Name: "Valparaíso"},
	{ID: 602, RegionID: 6, Name: "Viña del Mar"},
	{ID: 603, RegionID: 6, Name: "Quilpué"},
	{ID: 604, RegionID: 6, Name: "San Antonio"},
	{ID: 701, RegionID: 7, Name: "Santiago"},
	{ID: 702, RegionID: 7, Name: "Providencia"},
	{ID: 703, RegionID: 7, Name: "Las Condes"},
	{ID: 704, RegionID: 7, Name: "Ñuñoa"},
	{ID: 705, RegionID: 7, Name: "Maipú"},
	{ID: 706, RegionID: 7, Name: "La Florida"},
	{ID: 707, RegionID: 7, Name: "Puente Alto"},
	{ID: 708, RegionID: 7, Name: "San Bernardo"},
	{ID: 801, RegionID: 8, Name: "Rancagua"},
	{ID: 802, RegionID: 8, Name: "San Fernando"},
	{ID: 901, RegionID: 9, Name: "Talca"},
	{ID: 902, RegionID: 9, Name: "Curicó"},
	{ID: 903, RegionID: 9, Name: "Linares"},
	{ID: 1001, RegionID: 10, Name: "Chillán"},
	{ID: 1101, RegionID: 11, Name: "Concepción"},
	{ID: 1102, RegionID: 11, Name: "Talcahuano"},
	{ID: 1103, RegionID: 11, Name: "Los Ángeles"},
	{ID: 1201, RegionID: 12, Name: "Temuco"},
	{ID: 1202, RegionID: 12, Name: "Villarrica"},
	{ID: 1301, RegionID: 13, Name: "Valdivia"},
	{ID: 1401, RegionID: 14, Name: "Puerto Montt"},
	{ID: 1402, RegionID: 14, Name: "Osorno"},
	{ID: 1403, RegionID: 14, Name: "Castro"},
	{ID: 1501, RegionID: 15, Name: "Coyhaique"},
	{ID: 1601, RegionID: 16, Name: "Punta Arenas"},
}

// CommunesOf returns the communes belonging to regionID, or
// ErrRegionNotFound when the id does not exist.
func CommunesOf(regionID int) ([]Commune, error) {
	found := false
	for _, r := range Regions {
		if r.ID == regionID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrRegionNotFound
	}
	out := make([]Commune, 0, 8)
	for _, c := range Communes {
		if c.RegionID == regionID {
			out = append(out, c)
		}
	}
	return out, nil
}
