package factory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// Drafts are what the API accepts. They are converted into domain records
// only after every field has been checked.

// MaterialDraft names a raw stock row.
type MaterialDraft struct {
	Type  string `json:"type" binding:"required"`
	Size  int    `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
}

func (d MaterialDraft) key(field string) (models.StockKey, error) {
	t, err := models.ParseMaterialType(d.Type)
	if err != nil {
		return models.StockKey{}, &models.ValidationError{Field: field + "type", Reason: err.Error()}
	}
	if d.Color == "" {
		return models.StockKey{}, &models.ValidationError{Field: field + "color", Reason: "required"}
	}
	key := models.StockKey{Type: t, Size: models.MaterialSize(d.Size), Color: d.Color}
	if err := key.Validate(); err != nil {
		return models.StockKey{}, err
	}
	return key, nil
}

// StockReceiptDraft books bags delivered to the warehouse.
type StockReceiptDraft struct {
	MaterialDraft
	Quantity int    `json:"quantity"`
	Date     string `json:"date"`
}

// StockCountDraft reconciles a row with a physical count.
type StockCountDraft struct {
	MaterialDraft
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// ModelDraft describes a garment model.
type ModelDraft struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	SleeveLength float64 `json:"sleeveLength"`
	SleeveWidth  float64 `json:"sleeveWidth"`
	NeckType     string  `json:"neckType"`
	ImageURL     string  `json:"imageUrl"`
}

func (d ModelDraft) model(id string) models.FabricModel {
	return models.FabricModel{
		ID:           id,
		Name:         d.Name,
		Code:         d.Code,
		Length:       d.Length,
		Width:        d.Width,
		SleeveLength: d.SleeveLength,
		SleeveWidth:  d.SleeveWidth,
		NeckType:     d.NeckType,
		ImageURL:     d.ImageURL,
	}
}

// ProductionEntryDraft is one line of a machine work draft.
type ProductionEntryDraft struct {
	Raw struct {
		MaterialDraft
		Quantity int `json:"quantity"`
	} `json:"raw"`
	Produced struct {
		ModelID  string          `json:"modelId"`
		Quantity int             `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
	} `json:"produced"`
}

// MachineWorkDraft is a production run as entered.
type MachineWorkDraft struct {
	CustomerID  string                 `json:"customerId" binding:"required"`
	MachineName string                 `json:"machineName" binding:"required"`
	Date        string                 `json:"date"`
	Entries     []ProductionEntryDraft `json:"entries"`
}

func (s *Service) machineWork(id string, d MachineWorkDraft) (models.MachineWork, error) {
	w := models.MachineWork{
		ID:          id,
		CustomerID:  d.CustomerID,
		MachineName: d.MachineName,
		Date:        s.dateOr(d.Date),
		Entries:     make([]models.ProductionEntry, 0, len(d.Entries)),
	}
	for i, e := range d.Entries {
		key, err := e.Raw.key(fmt.Sprintf("entries[%d].raw.", i))
		if err != nil {
			return models.MachineWork{}, err
		}
		w.Entries = append(w.Entries, models.ProductionEntry{
			Raw: models.RawConsumption{Type: key.Type, Size: key.Size, Color: key.Color, Quantity: e.Raw.Quantity},
			Produced: models.ProducedOutput{
				ModelID:  e.Produced.ModelID,
				Quantity: e.Produced.Quantity,
				Price:    e.Produced.Price,
			},
		})
	}
	return w, nil
}

// ProcessingEntryDraft is one line of a processing draft.
type ProcessingEntryDraft struct {
	ModelID          string          `json:"modelId"`
	QuantitySent     int             `json:"quantitySent"`
	QuantityReceived int             `json:"quantityReceived"`
	Price            decimal.Decimal `json:"price"`
}

// ProcessingWorkDraft is a finishing batch as entered.
type ProcessingWorkDraft struct {
	CustomerID  string                 `json:"customerId" binding:"required"`
	MachineName string                 `json:"machineName" binding:"required"`
	Date        string                 `json:"date"`
	Entries     []ProcessingEntryDraft `json:"entries"`
}

func (s *Service) processingWork(id string, d ProcessingWorkDraft) models.ProcessingWork {
	w := models.ProcessingWork{
		ID:          id,
		CustomerID:  d.CustomerID,
		MachineName: d.MachineName,
		Date:        s.dateOr(d.Date),
		Entries:     make([]models.ProcessingEntry, 0, len(d.Entries)),
	}
	for _, e := range d.Entries {
		w.Entries = append(w.Entries, models.ProcessingEntry(e))
	}
	return w
}

// CustomerDraft carries an account's contact details.
type CustomerDraft struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// InvoiceItemDraft is one sold line.
type InvoiceItemDraft struct {
	ModelID     string          `json:"modelId"`
	MachineName string          `json:"machineName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InvoiceDraft is a sale as entered.
type InvoiceDraft struct {
	Date  string             `json:"date"`
	Items []InvoiceItemDraft `json:"items"`
}

func (s *Service) invoice(id string, d InvoiceDraft) models.Invoice {
	inv := models.Invoice{ID: id, Date: s.dateOr(d.Date), Items: make([]models.InvoiceItem, 0, len(d.Items))}
	for _, item := range d.Items {
		inv.Items = append(inv.Items, models.InvoiceItem(item))
	}
	return inv
}

// PaymentDraft is money received or paid.
type PaymentDraft struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseDraft is an outflow as entered.
type ExpenseDraft struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// IDList is the body of bulk deletes.
type IDList struct {
	IDs []string `json:"ids" binding:"required"`
}
