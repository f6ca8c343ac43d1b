package model

import internalmodel "github.com/goliatone/go-predictform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeFile    = internalmodel.FieldTypeFile
)

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
