package entity

// MovementType tipo de movimiento de inventario (enum cerrado).
type MovementType string

const (
	MovementIN         MovementType = "IN"         // entrada
	MovementOUT        MovementType = "OUT"        // salida
	MovementTRANSFER   MovementType = "TRANSFER"   // traslado entre bodegas
	MovementADJUSTMENT MovementType = "ADJUSTMENT" // ajuste con delta firmado
)

// Valid indica si el valor pertenece al enum.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIN, MovementOUT, MovementTRANSFER, MovementADJUSTMENT:
		return true
	}
	return false
}

// DocumentType tipo de documento que origina un movimiento (enum cerrado).
type DocumentType string

const (
	DocGoodsReceipt DocumentType = "GOODS_RECEIPT"
	DocInvoice      DocumentType = "INVOICE"
	DocTransfer     DocumentType = "TRANSFER"
	DocAdjustment   DocumentType = "ADJUSTMENT"
	DocProduction   DocumentType = "PRODUCTION"
)

// Valid indica si el valor pertenece al enum.
func (t DocumentType) Valid() bool {
	switch t {
	case DocGoodsReceipt, DocInvoice, DocTransfer, DocAdjustment, DocProduction:
		return true
	}
	return false
}

// DefaultSeries devuelve la serie determinística por defecto cuando no hay una
// configurada para (tipo, año). Una vez usada queda persistida en document_sequences.
func (t DocumentType) DefaultSeries() string {
	switch t {
	case DocGoodsReceipt:
		return "NIR"
	case DocInvoice:
		return "FAC"
	case DocTransfer:
		return "TRF"
	case DocAdjustment:
		return "AJU"
	case DocProduction:
		return "OP"
	}
	return "DOC"
}

// InvoiceStatus estado de una factura (enum cerrado).
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceIssued    InvoiceStatus = "issued"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// CanTransitionTo define la máquina de estados:
// draft -> issued | cancelled; issued -> paid | cancelled. paid y cancelled son terminales.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceIssued || next == InvoiceCancelled
	case InvoiceIssued:
		return next == InvoicePaid || next == InvoiceCancelled
	}
	return false
}

// ProductionStatus estado de una orden de producción (enum cerrado).
type ProductionStatus string

const (
	ProductionPending    ProductionStatus = "pending"
	ProductionInProgress ProductionStatus = "in_progress"
	ProductionCompleted  ProductionStatus = "completed"
	ProductionCancelled  ProductionStatus = "cancelled"
)

// CanTransitionTo define la máquina de estados:
// pending -> in_progress | cancelled; in_progress -> completed | cancelled.
func (s ProductionStatus) CanTransitionTo(next ProductionStatus) bool {
	switch s {
	case ProductionPending:
		return next == ProductionInProgress || next == ProductionCancelled
	case ProductionInProgress:
		return next == ProductionCompleted || next == ProductionCancelled
	}
	return false
}
