package form

import "cafein/model"

const (
	OpenAllTime       = "isOpenAllTime"
	ChargingAvailable = "isChargingAvailable"
	Parking           = "hasParking"
	PetFriendly       = "isPetFriendly"
	Dessert           = "hasDessert"
)

var facilityKinds = []model.Facility{
	{Name: OpenAllTime, Title: "24시간 운영여부"},
	{Name: ChargingAvailable, Title: "콘센트 유무"},
	{Name: Parking, Title: "주차공간"},
	{Name: PetFriendly, Title: "동물 출입 가능 여부"},
	{Name: Dessert, Title: "디저트 판매 여부"},
}

// DefaultFacilities returns the five facility kinds in display order, all unchecked.
func DefaultFacilities() []model.Facility {
	out := make([]model.Facility, len(facilityKinds))
	copy(out, facilityKinds)
	return out
}

// FacilityNames lists the facility keys in display order.
func FacilityNames() []string {
	names := make([]string, len(facilityKinds))
	for i, f := range facilityKinds {
		names[i] = f.Name
	}
	return names
}

// IsFacilityKind reports whether name is one of the five facility keys.
func IsFacilityKind(name string) bool {
	for _, f := range facilityKinds {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Toggle returns a copy of list with the entry called name set to checked.
// list itself is left untouched. An unknown name yields an equal copy.
func Toggle(list []model.Facility, name string, checked bool) []model.Facility {
	out := make([]model.Facility, len(list))
	for i, f := range list {
		if f.Name == name {
			f.Checked = checked
		}
		out[i] = f
	}
	return out
}

// Project strips display titles, keeping name and checked.
func Project(list []model.Facility) []model.Facility {
	out := make([]model.Facility, len(list))
	for i, f := range list {
		out[i] = model.Facility{Name: f.Name, Checked: f.Checked}
	}
	return out
}
