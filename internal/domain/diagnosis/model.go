package diagnosis

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediscan/mediscan/internal/platform/apperr"
)

// Severity is the AI-assigned urgency classification driving workflow gating.
type Severity string

const (
	SeverityNormal    Severity = "Normal"
	SeverityModerate  Severity = "Moderate"
	SeveritySevere    Severity = "Severe"
	SeverityEmergency Severity = "Emergency"
)

// Valid reports whether s is one of the recognized severity labels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityNormal, SeverityModerate, SeveritySevere, SeverityEmergency:
		return true
	}
	return false
}

// NeedsAppointment reports whether the severity surfaces the booking
// call-to-action. Only Severe and Emergency results do.
func (s Severity) NeedsAppointment() bool {
	return s == SeveritySevere || s == SeverityEmergency
}

// Differential is one candidate condition within an analysis. Confidence
// values are independent confidences, not a probability partition; they need
// not sum to 100 across candidates.
type Differential struct {
	DiseaseName           string   `json:"disease_name"`
	ConfidencePercent     float64  `json:"confidence_percent"`
	KeySupportingSymptoms []string `json:"key_supporting_symptoms"`
	SuggestedTests        []string `json:"suggested_tests"`
}

// PatientAdvice is the patient-facing portion of an analysis.
type PatientAdvice struct {
	Steps        []string `json:"steps"`
	Monitoring   []string `json:"monitoring"`
	HomeCare     []string `json:"home_care"`
	WarningSigns []string `json:"warning_signs"`
}

// DoctorReport is the clinician-facing portion of an analysis.
type DoctorReport struct {
	ClinicalSummary                string   `json:"clinical_summary"`
	DifferentialDiagnosesReasoning string   `json:"differential_diagnoses_reasoning"`
	RecommendedTests               []string `json:"recommended_tests"`
	UrgencyLevel                   string   `json:"urgency_level"`
	TreatmentDirection             string   `json:"treatment_direction"`
	RedFlags                       []string `json:"red_flags"`
}

// Analysis is the structured evaluator output. The shape is a fixed contract
// with the external evaluator; Validate rejects anything that does not match
// it before the result is trusted downstream.
type Analysis struct {
	Summary                 string         `json:"summary"`
	DifferentialDiagnoses   []Differential `json:"differential_diagnoses"`
	Severity                Severity       `json:"severity"`
	ReasonForClassification string         `json:"reason_for_classification"`
	PatientAdvice           PatientAdvice  `json:"patient_advice"`
	DoctorReport            DoctorReport   `json:"doctor_report"`
}

// Validate checks the analysis against the expected schema: required fields
// present, severity one of the four labels, confidence within [0,100].
func (a *Analysis) Validate() error {
	if a.Summary == "" {
		return apperr.New(apperr.MalformedResponse, "evaluator response missing summary")
	}
	if !a.Severity.Valid() {
		return apperr.Newf(apperr.MalformedResponse, "evaluator response has unknown severity %q", a.Severity)
	}
	if len(a.DifferentialDiagnoses) == 0 {
		return apperr.New(apperr.MalformedResponse, "evaluator response has no differential diagnoses")
	}
	for _, d := range a.DifferentialDiagnoses {
		if d.DiseaseName == "" {
			return apperr.New(apperr.MalformedResponse, "evaluator response has a differential without a disease name")
		}
		if d.ConfidencePercent < 0 || d.ConfidencePercent > 100 {
			return apperr.Newf(apperr.MalformedResponse, "confidence %.1f out of range for %s", d.ConfidencePercent, d.DiseaseName)
		}
	}
	return nil
}

// Diagnosis is a single AI evaluation of a symptom narrative, owned by the
// user who submitted it. Records are immutable once created.
type Diagnosis struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Symptoms  string    `db:"symptoms" json:"symptoms"`
	Analysis  Analysis  `db:"ai_analysis" json:"ai_analysis"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
