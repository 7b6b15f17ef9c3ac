package entity

// Material artículo de un proyecto (exactamente uno) con su unidad de medida.
type Material struct {
	ID           string
	ProjectID    string
	UOMID        string
	StatusID     string
	LookupCode   string
	Name         string
	IsSerialized bool
}
