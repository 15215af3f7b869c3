package catalog

// Vehicle is one rentable model from the fleet catalog.
type Vehicle struct {
	Model       string
	PricePerDay float64
}

var fleet = []Vehicle{
	{Model: "Bajaj Pulsar 150", PricePerDay: 550},
	{Model: "TVS Apache RTR 160", PricePerDay: 600},
	{Model: "Honda Activa 6G", PricePerDay: 400},
	{Model: "Suzuki Access 125", PricePerDay: 450},
	{Model: "Royal Enfield Classic 350", PricePerDay: 1200},
	{Model: "Yamaha FZ-S V3", PricePerDay: 700},
}

// Lookup returns catalog data for a model. A miss means no vehicle is
// selected yet and pricing yields the zero quote.
func Lookup(model string) (Vehicle, bool) {
	for _, vehicle := range fleet {
		if vehicle.Model == model {
			return vehicle, true
		}
	}

	return Vehicle{}, false
}

// Models lists the fleet in catalog order.
func Models() []Vehicle {
	out := make([]Vehicle, len(fleet))
	copy(out, fleet)
	return out
}
