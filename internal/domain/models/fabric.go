package models

// FabricModel is a garment model produced by the knitting machines.
//
// ProducedCount holds units that came off a machine and still wait for
// processing; StockCount holds finished, sellable units. The JSON names are
// kept from the original documents.
type FabricModel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	SleeveLength  float64 `json:"sleeveLength"`
	SleeveWidth   float64 `json:"sleeveWidth"`
	NeckType      string  `json:"neckType"`
	StockCount    int     `json:"stockCount"`
	ProducedCount int     `json:"producedCount"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

// InProduction returns units produced but not yet processed.
func (m FabricModel) InProduction() int { return m.ProducedCount }

// Finished returns sellable units.
func (m FabricModel) Finished() int { return m.StockCount }
