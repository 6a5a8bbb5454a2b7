package constant

// SearchType selects which backend index a people query runs against.
// Vehicle searches have their own endpoint and carry no type.
type SearchType string

const (
	SearchTypeName    SearchType = "name"
	SearchTypePhone   SearchType = "phone"
	SearchTypeVehicle SearchType = "vehicle"
)

// Backend endpoints, relative to the configured base URL.
const (
	EndpointLogin          = "/auth/login"
	EndpointSearchPeople   = "/search/people"
	EndpointSearchVehicles = "/search/vehicles"
	EndpointRecordDetails  = "/records"
)

// Credential store keys. These are the only two durable client-side values.
const (
	KeyAuthToken = "authToken"
	KeyUserInfo  = "userInfo"
)
