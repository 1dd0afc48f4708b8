package krakowairport

import "fmt"

// Arrival is a single row of the arrivals board. Every field is kept as the
// trimmed text shown on the website.
type Arrival struct {
	// Time is the scheduled or actual time (czas).
	Time string
	// Destination is the origin city shown on the board (kierunek).
	Destination string
	// Flight is the flight designator (lot).
	Flight string
	// Status is the status text (status).
	Status string
}

// FieldCount is the number of fields in an Arrival and the minimum amount of
// cells a table row needs to produce one.
const FieldCount = 4

// Row returns the fields of the arrival in column order.
func (a Arrival) Row() []string {
	return []string{a.Time, a.Destination, a.Flight, a.Status}
}

// ArrivalFromRow is the inverse of Arrival.Row.
func ArrivalFromRow(row []string) (Arrival, error) {
	if len(row) != FieldCount {
		return Arrival{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(row))
	}
	return Arrival{
		Time:        row[0],
		Destination: row[1],
		Flight:      row[2],
		Status:      row[3],
	}, nil
}
