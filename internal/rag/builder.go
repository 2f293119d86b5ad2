package rag

import "strings"

// Column names of the vehicle mapping CSV.
const (
	ColModelID       = "vdatModelId"
	ColMakeName      = "vdatMakeName"
	ColModelName     = "vdatModelName"
	ColCoxMakeName   = "coxMakeName"
	ColCoxMakeCode   = "coxMakeCode"
	ColCoxTrimName   = "coxTrimName"
	ColCoxTrimCode   = "coxTrimCode"
	ColCoxModelName  = "coxModelName"
	ColCoxModelCode  = "coxModelCode"
	ColCoxSeriesName = "coxSeriesName"
	ColCoxSeriesCode = "coxSeriesCode"
	ColCoxFuelCode   = "coxFuelTypeCode"
	ColCoxFuelName   = "coxFuelTypeName"
	ColCoxBodyName   = "coxBodyStyleName"
	ColCoxBodyCode   = "coxBodyStyleCode"

	ColNeedsBodystyle = "Needs Bodystyle"
	ColNeedsFuelType  = "Needs Fuel Type"
	ColMultiModels    = "Map to Multiple Cox Models"
	ColMultiTrims     = "Map to Multiple Cox Trims"
)

// flagYes is the sentinel marking a special-requirement flag as set.
const flagYes = "Yes"

// PlaceholderSource is the citation id of the empty-knowledge-base document.
const PlaceholderSource = "placeholder"

const placeholderText = "This is a placeholder document for an empty vehicle mapping knowledge base."

var requiredColumns = []string{
	ColModelID,
	ColMakeName,
	ColModelName,
	ColCoxMakeName,
	ColCoxTrimName,
}

// modelGroup is every row sharing one vdatModelId, in input order.
type modelGroup struct {
	id   string
	rows []Row
}

// BuildDocuments validates the input schema, groups rows by model id in
// first-seen order, and renders one searchable document per group. Zero
// groups yield the single placeholder document so the downstream index is
// never structurally empty.
func BuildDocuments(table Table) ([]Document, error) {
	var missing []string
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	groups := groupByModelID(table.Rows)
	if len(groups) == 0 {
		return []Document{PlaceholderDocument()}, nil
	}

	docs := make([]Document, 0, len(groups))
	for _, g := range groups {
		docs = append(docs, buildDocument(g))
	}
	return docs, nil
}

// PlaceholderDocument is what an empty upload indexes instead of nothing.
func PlaceholderDocument() Document {
	return Document{
		Text: placeholderText,
		Metadata: Metadata{
			"source":     PlaceholderSource,
			"trim_count": 0,
		},
	}
}

func groupByModelID(rows []Row) []modelGroup {
	index := make(map[string]int)
	var groups []modelGroup
	for _, row := range rows {
		id := row.Value(ColModelID)
		if id == "" {
			continue
		}
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, modelGroup{id: id})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}

// uniqueValues collects the de-duplicated, null-filtered values of one
// column across the group, preserving first-seen order. A column absent
// from the schema simply yields an empty list.
func uniqueValues(rows []Row, column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		v := row.Value(column)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func buildDocument(g modelGroup) Document {
	first := g.rows[0]

	makeModel := strings.TrimSpace(first.Value(ColMakeName) + " " + first.Value(ColModelName))
	coxMake := first.Value(ColCoxMakeName)
	coxMakeCode := first.Value(ColCoxMakeCode)

	trims := uniqueValues(g.rows, ColCoxTrimName)
	trimCodes := uniqueValues(g.rows, ColCoxTrimCode)
	models := uniqueValues(g.rows, ColCoxModelName)
	modelCodes := uniqueValues(g.rows, ColCoxModelCode)
	series := uniqueValues(g.rows, ColCoxSeriesName)
	seriesCodes := uniqueValues(g.rows, ColCoxSeriesCode)
	fuelCodes := uniqueValues(g.rows, ColCoxFuelCode)
	fuelNames := uniqueValues(g.rows, ColCoxFuelName)
	bodyStyles := uniqueValues(g.rows, ColCoxBodyName)
	bodyCodes := uniqueValues(g.rows, ColCoxBodyCode)

	var b strings.Builder
	line := func(label string, value string) {
		if value != "" {
			b.WriteString(label)
			b.WriteString(value)
			b.WriteString("\n")
		}
	}
	list := func(label string, values []string) {
		if len(values) > 0 {
			line(label, strings.Join(values, ", "))
		}
	}

	line("Model ID: ", g.id)
	line("Vehicle: ", makeModel)
	// Fuel type goes early and prominently so fuel-type questions retrieve it.
	if len(fuelCodes) > 0 {
		fuel := "FUEL TYPE: " + strings.Join(fuelCodes, ", ")
		if len(fuelNames) > 0 {
			fuel += " (" + strings.Join(fuelNames, ", ") + ")"
		}
		b.WriteString(fuel)
		b.WriteString("\n")
	}
	line("Cox Make: ", coxMake)
	line("Cox Make Code: ", coxMakeCode)
	list("Cox Series: ", series)
	list("Cox Series Codes: ", seriesCodes)
	list("Cox Models: ", models)
	list("Cox Model Codes: ", modelCodes)
	list("Cox Trims: ", trims)
	list("Cox Trim Codes: ", trimCodes)
	list("Cox Body Styles: ", bodyStyles)
	list("Cox Body Style Codes: ", bodyCodes)

	needsBody := first.Value(ColNeedsBodystyle) == flagYes
	needsFuel := first.Value(ColNeedsFuelType) == flagYes
	multiModels := first.Value(ColMultiModels) == flagYes
	multiTrims := first.Value(ColMultiTrims) == flagYes

	var flags []string
	if needsBody {
		flags = append(flags, "Requires Body Style mapping")
	}
	if needsFuel {
		flags = append(flags, "Requires Fuel Type mapping")
	}
	if multiModels {
		flags = append(flags, "Maps to multiple Cox models")
	}
	if multiTrims {
		flags = append(flags, "Maps to multiple Cox trims")
	}
	if len(flags) > 0 {
		line("Special Requirements: ", strings.Join(flags, ", "))
	}

	meta := Metadata{
		"source":              g.id,
		"vdat_make_name":      first.Value(ColMakeName),
		"vdat_model_name":     first.Value(ColModelName),
		"cox_make_name":       coxMake,
		"cox_models_str":      strings.Join(models, ", "),
		"cox_trims_str":       strings.Join(trims, ", "),
		"cox_trim_codes_str":  strings.Join(trimCodes, ", "),
		"fuel_types_str":      strings.Join(fuelNames, ", "),
		"needs_bodystyle":     needsBody,
		"needs_fuel_type":     needsFuel,
		"multiple_cox_models": multiModels,
		"multiple_cox_trims":  multiTrims,
		"trim_count":          len(trims),
	}

	return Document{
		Text:     strings.TrimRight(b.String(), "\n"),
		Metadata: meta,
	}
}

// VehicleCount counts the real (non-placeholder) documents.
func VehicleCount(docs []Document) int {
	n := 0
	for _, d := range docs {
		if !d.IsPlaceholder() {
			n++
		}
	}
	return n
}
