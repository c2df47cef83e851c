package qualification

import "testing"

func topAnswers() AnswerSet {
	return AnswerSet{
		IngresoMensual:      "Más de $30.000 USD",
		TomadorDecision:     "Sí",
		PlazoImplementacion: "Inmediatamente",
		InversionPublicidad: "Sí, actualmente",
		DispuestoInvertir:   "Sí",
	}
}

func TestPerfectAnswersScoreMax(t *testing.T) {
	answers := topAnswers()
	if got := Score(answers); got != MaxScore {
		t.Fatalf("expected %d, got %d", MaxScore, got)
	}
	if !Qualify(answers) {
		t.Fatal("expected perfect answers to qualify")
	}
}

func TestUnrecognizedAnswersScoreZero(t *testing.T) {
	answers := AnswerSet{
		IngresoMensual:      "Menos de $500 USD",
		TomadorDecision:     "No",
		PlazoImplementacion: "Solo estoy explorando",
		InversionPublicidad: "Nunca",
		DispuestoInvertir:   "No por ahora",
	}
	if got := Score(answers); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if Qualify(answers) {
		t.Fatal("expected unrecognized answers not to qualify")
	}
	if Qualify(AnswerSet{}) {
		t.Fatal("expected empty answer set not to qualify")
	}
}

func TestThresholdIsInclusive(t *testing.T) {
	// 25 + 25 + 10 = 60
	atThreshold := AnswerSet{
		IngresoMensual:      "$10.000 USD - $30.000 USD",
		TomadorDecision:     "Sí",
		PlazoImplementacion: "60–90 días",
	}
	if got := Score(atThreshold); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if !Qualify(atThreshold) {
		t.Fatal("expected score 60 to qualify")
	}

	// every weight is a multiple of 5, so 55 is the highest failing score
	below := AnswerSet{
		IngresoMensual:      "$10.000 USD - $30.000 USD",
		TomadorDecision:     "Lo consulto con socios",
		PlazoImplementacion: "60–90 días",
		DispuestoInvertir:   "Depende del plan",
	}
	if got := Score(below); got != 55 {
		t.Fatalf("expected 55, got %d", got)
	}
	if Qualify(below) {
		t.Fatal("expected score below threshold not to qualify")
	}
}

func TestMatchingIsExact(t *testing.T) {
	cases := []AnswerSet{
		{TomadorDecision: "sí"},
		{TomadorDecision: " Sí"},
		{TomadorDecision: "Si"},
		{PlazoImplementacion: "60-90 días"}, // hyphen instead of en dash
	}
	for _, answers := range cases {
		if got := Score(answers); got != 0 {
			t.Fatalf("expected 0 for %+v, got %d", answers, got)
		}
	}
}

func TestUnknownValueEquivalentToOmitted(t *testing.T) {
	with := topAnswers()
	with.InversionPublicidad = "Tal vez"
	without := topAnswers()
	without.InversionPublicidad = ""

	if Score(with) != Score(without) {
		t.Fatalf("expected equal scores, got %d and %d", Score(with), Score(without))
	}
}

func TestRubricMatchesScore(t *testing.T) {
	total := 0
	for _, c := range Rubric() {
		if len(c.Options) == 0 {
			t.Fatalf("criterion %s has no options", c.Field)
		}
		total += c.Options[0].Points
	}
	if total != MaxScore {
		t.Fatalf("top options should sum to %d, got %d", MaxScore, total)
	}
}

func TestRubricReturnsCopy(t *testing.T) {
	r := Rubric()
	r[0].Options[0].Points = 0
	if Score(topAnswers()) != MaxScore {
		t.Fatal("mutating Rubric() result must not affect scoring")
	}
}

func TestEvaluate(t *testing.T) {
	res := Evaluate(topAnswers())
	if res.Score != MaxScore || !res.Calificado {
		t.Fatalf("unexpected result: %+v", res)
	}
}
