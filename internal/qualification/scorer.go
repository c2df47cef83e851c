package qualification

// AnswerSet holds the five scored intake answers. Zero values score 0.
type AnswerSet struct {
	IngresoMensual      string `json:"ingresoMensual"`
	TomadorDecision     string `json:"tomadorDecision"`
	PlazoImplementacion string `json:"plazoImplementacion"`
	InversionPublicidad string `json:"inversionPublicidad"`
	DispuestoInvertir   string `json:"dispuestoInvertir"`
}

// Score returns the rubric total for answers, between 0 and MaxScore.
func Score(answers AnswerSet) int {
	return points(FieldIngresoMensual, answers.IngresoMensual) +
		points(FieldTomadorDecision, answers.TomadorDecision) +
		points(FieldPlazoImplementacion, answers.PlazoImplementacion) +
		points(FieldInversionPublicidad, answers.InversionPublicidad) +
		points(FieldDispuestoInvertir, answers.DispuestoInvertir)
}

// Qualify reports whether answers reach the qualification threshold.
func Qualify(answers AnswerSet) bool {
	return Score(answers) >= Threshold
}

// Result bundles the score with the qualification decision.
type Result struct {
	Score      int  `json:"score"`
	Calificado bool `json:"calificado"`
}

// Evaluate scores answers once and returns both values.
func Evaluate(answers AnswerSet) Result {
	score := Score(answers)
	return Result{Score: score, Calificado: score >= Threshold}
}
