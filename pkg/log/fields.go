package log

const (
	// Service
	FieldService   = "service"
	FieldComponent = "component"

	// Identifier
	FieldTag        = "tag"
	FieldKind       = "kind"
	FieldMachineID  = "machine_id"
	FieldIdentifier = "identifier"
	FieldCount      = "count"
	FieldAmbiguous  = "ambiguous"

	// Entropy
	FieldDevice    = "device"
	FieldFallbacks = "fallbacks"
)
