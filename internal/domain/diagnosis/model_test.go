package diagnosis

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/mediscan/mediscan/internal/platform/apperr"
)

func validAnalysis() Analysis {
	return Analysis{
		Summary: "Symptoms consistent with a viral upper respiratory infection.",
		DifferentialDiagnoses: []Differential{
			{
				DiseaseName:           "Common Cold",
				ConfidencePercent:     70,
				KeySupportingSymptoms: []string{"runny nose", "sore throat"},
				SuggestedTests:        []string{"none required"},
			},
			{
				DiseaseName:           "Influenza",
				ConfidencePercent:     25,
				KeySupportingSymptoms: []string{"fatigue"},
				SuggestedTests:        []string{"rapid flu test"},
			},
		},
		Severity:                SeverityNormal,
		ReasonForClassification: "Mild self-limiting symptoms without red flags.",
		PatientAdvice: PatientAdvice{
			Steps:        []string{"rest", "hydrate"},
			Monitoring:   []string{"temperature twice daily"},
			HomeCare:     []string{"warm fluids"},
			WarningSigns: []string{"difficulty breathing", "fever above 39C"},
		},
		DoctorReport: DoctorReport{
			ClinicalSummary:                "Afebrile adult with coryza.",
			DifferentialDiagnosesReasoning: "Seasonal pattern favors viral etiology.",
			RecommendedTests:               []string{"none"},
			UrgencyLevel:                   "routine",
			TreatmentDirection:             "symptomatic care",
			RedFlags:                       []string{"dyspnea"},
		},
	}
}

func TestSeverityValid(t *testing.T) {
	for _, s := range []Severity{SeverityNormal, SeverityModerate, SeveritySevere, SeverityEmergency} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Severity{"", "normal", "Critical", "EMERGENCY"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestSeverityNeedsAppointment(t *testing.T) {
	cases := map[Severity]bool{
		SeverityNormal:    false,
		SeverityModerate:  false,
		SeveritySevere:    true,
		SeverityEmergency: true,
	}
	for s, want := range cases {
		if got := s.NeedsAppointment(); got != want {
			t.Errorf("%s.NeedsAppointment() = %v, want %v", s, got, want)
		}
	}
}

func TestAnalysisValidate(t *testing.T) {
	a := validAnalysis()
	if err := a.Validate(); err != nil {
		t.Fatalf("valid analysis rejected: %v", err)
	}
}

func TestAnalysisValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Analysis)
	}{
		{"missing summary", func(a *Analysis) { a.Summary = "" }},
		{"unknown severity", func(a *Analysis) { a.Severity = "Critical" }},
		{"no differentials", func(a *Analysis) { a.DifferentialDiagnoses = nil }},
		{"unnamed differential", func(a *Analysis) { a.DifferentialDiagnoses[0].DiseaseName = "" }},
		{"confidence above 100", func(a *Analysis) { a.DifferentialDiagnoses[0].ConfidencePercent = 120 }},
		{"negative confidence", func(a *Analysis) { a.DifferentialDiagnoses[1].ConfidencePercent = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAnalysis()
			tc.mutate(&a)
			err := a.Validate()
			if !apperr.Is(err, apperr.MalformedResponse) {
				t.Fatalf("expected MalformedResponse, got %v", err)
			}
		})
	}
}

func TestAnalysisJSONRoundTrip(t *testing.T) {
	a := validAnalysis()

	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Analysis
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(a, back) {
		t.Fatalf("round trip changed the analysis:\n got %+v\nwant %+v", back, a)
	}
}
