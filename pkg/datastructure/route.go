package datastructure

// Route is a raw flight route record as handed over by the loading layer.
// Endpoints are identified by code, or by airport ID when the code is empty.
type Route struct {
	SourceCode      string
	DestCode        string
	SourceID        int32
	DestID          int32
	Airline         string
	Stops           int
	Price           Money
	DurationMinutes int64
}

func NewRoute(sourceCode, destCode, airline string, price Money, durationMinutes int64) Route {
	return Route{
		SourceCode:      sourceCode,
		DestCode:        destCode,
		Airline:         airline,
		Price:           price,
		DurationMinutes: durationMinutes,
	}
}

// Edge is an admissible route stored in the adjacency list. Both endpoints
// are resolved so a path can be rebuilt without consulting the node index.
type Edge struct {
	From            Airport
	To              Airport
	Airline         string
	Price           Money
	DurationMinutes int64
}

// Hops is the weight of every edge under the layover criterion.
func (e Edge) Hops() int64 {
	return 1
}
