// Package qualification scores a lead's intake answers against the fixed
// rubric and decides whether the lead is qualified for a consultation.
//
// The rubric is a compile-time constant. Matching is exact and case-sensitive;
// no trimming or normalization is applied to answers.
package qualification

// Threshold is the minimum score (inclusive) a qualified lead reaches.
const Threshold = 60

// MaxScore is the score of an answer set holding the top option in every field.
const MaxScore = 100

// Field names as they appear on the intake form and in JSON payloads.
const (
	FieldIngresoMensual      = "ingresoMensual"
	FieldTomadorDecision     = "tomadorDecision"
	FieldPlazoImplementacion = "plazoImplementacion"
	FieldInversionPublicidad = "inversionPublicidad"
	FieldDispuestoInvertir   = "dispuestoInvertir"
)

// Option is one selectable answer and the points it contributes.
type Option struct {
	Value  string `json:"value"`
	Points int    `json:"points"`
}

// Criterion is one scored question with its options ordered by points, highest first.
type Criterion struct {
	Field   string   `json:"field"`
	Options []Option `json:"options"`
}

// rubric lists every scored question. Any answer not listed scores 0.
var rubric = []Criterion{
	{
		Field: FieldIngresoMensual,
		Options: []Option{
			{"Más de $30.000 USD", 30},
			{"$10.000 USD - $30.000 USD", 25},
			{"$3.000 USD - $10.000 USD", 20},
			{"$1.000 USD - $3.000 USD", 10},
			{"$500 USD - $1.000 USD", 5},
		},
	},
	{
		Field: FieldTomadorDecision,
		Options: []Option{
			{"Sí", 25},
			{"Lo consulto con socios", 15},
		},
	},
	{
		Field: FieldPlazoImplementacion,
		Options: []Option{
			{"Inmediatamente", 20},
			{"30 días", 15},
			{"60–90 días", 10},
		},
	},
	{
		Field: FieldInversionPublicidad,
		Options: []Option{
			{"Sí, actualmente", 15},
			{"Sí, en el pasado", 10},
		},
	},
	{
		Field: FieldDispuestoInvertir,
		Options: []Option{
			{"Sí", 10},
			{"Depende del plan", 5},
		},
	},
}

// Rubric returns a copy of the scored questions for rendering the intake form.
func Rubric() []Criterion {
	out := make([]Criterion, len(rubric))
	for i, c := range rubric {
		out[i] = Criterion{Field: c.Field, Options: append([]Option(nil), c.Options...)}
	}
	return out
}

func points(field, value string) int {
	for _, c := range rubric {
		if c.Field != field {
			continue
		}
		for _, o := range c.Options {
			if o.Value == value {
				return o.Points
			}
		}
		return 0
	}
	return 0
}
