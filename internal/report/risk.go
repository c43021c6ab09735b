package report

type RiskLevel string

const (
	RiskLow        RiskLevel = "low"
	RiskLowMedium  RiskLevel = "low-medium"
	RiskMedium     RiskLevel = "medium"
	RiskMediumHigh RiskLevel = "medium-high"
	RiskHigh       RiskLevel = "high"
)

type Risk struct {
	Level   RiskLevel `json:"level"`
	Label   string    `json:"label"`
	Message string    `json:"message"`
}

// riskBands is ordered from the highest threshold down; first match wins.
var riskBands = []struct {
	min  float64
	risk Risk
}{
	{80, Risk{
		Level:   RiskLow,
		Label:   "Low Risk",
		Message: "Brilliant! You've put strong protections in place. Just keep up these habits and review things every now and then.",
	}},
	{60, Risk{
		Level:   RiskLowMedium,
		Label:   "Low-Medium Risk",
		Message: "Good job, most of your setup is secure, but there are a few things you could tweak to be even safer.",
	}},
	{40, Risk{
		Level:   RiskMedium,
		Label:   "Medium Risk",
		Message: "You've got some protections in place, but there are clear gaps. Fixing these will really strengthen your security.",
	}},
	{20, Risk{
		Level:   RiskMediumHigh,
		Label:   "Medium-High Risk",
		Message: "Your household is exposed in several areas. Tackling the recommended fixes will make a big difference.",
	}},
}

var riskHigh = Risk{
	Level:   RiskHigh,
	Label:   "High Risk",
	Message: "Your setup is very vulnerable right now. It's important to act quickly on the top fixes to protect your devices and accounts.",
}

// Classify maps a safe-answer percentage onto its risk band.
func Classify(percent float64) Risk {
	for _, b := range riskBands {
		if percent >= b.min {
			return b.risk
		}
	}
	return riskHigh
}
