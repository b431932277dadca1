package models

// Carrier identifies a shipping company. The empty string means unknown.
type Carrier string

const (
	CarrierFedEx Carrier = "FEDEX"
	CarrierUPS   Carrier = "UPS"
	CarrierUSPS  Carrier = "USPS"
	CarrierDHL   Carrier = "DHL"
	CarrierOther Carrier = "OTHER"
)

func (c Carrier) Known() bool {
	return c != ""
}
