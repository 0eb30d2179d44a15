package contracts

// Company is one record of the static company document
// ⭐ SSOT: 회사 데이터 구조는 여기서만 정의 (data.json 스키마)
type Company struct {
	Ticker     string      `json:"ticker" yaml:"ticker"`
	Name       string      `json:"name" yaml:"name"`
	CEO        string      `json:"ceo" yaml:"ceo"`
	HQ         string      `json:"hq" yaml:"hq"`
	Industry   string      `json:"industry" yaml:"industry"`
	YoY2024    float64     `json:"yoy2024" yaml:"yoy2024"` // 2024 수익률 (%)
	Scenario   *Scenario   `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Scoreboard []ScoreItem `json:"scoreboard" yaml:"scoreboard"`
	QA         []QA        `json:"qa" yaml:"qa"`
	Facts      []string    `json:"facts" yaml:"facts"`
}

// Scenario holds bear/base/bull return projections in percent.
// Every field is optional in the document.
type Scenario struct {
	Bear *float64 `json:"bear,omitempty" yaml:"bear,omitempty"`
	Base *float64 `json:"base,omitempty" yaml:"base,omitempty"`
	Bull *float64 `json:"bull,omitempty" yaml:"bull,omitempty"`

	BearBullets []string `json:"bearBullets,omitempty" yaml:"bearBullets,omitempty"`
	BaseBullets []string `json:"baseBullets,omitempty" yaml:"baseBullets,omitempty"`
	BullBullets []string `json:"bullBullets,omitempty" yaml:"bullBullets,omitempty"`
}

// ScoreItem is one scoreboard metric
type ScoreItem struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Desc  string  `json:"desc" yaml:"desc"`
}

// QA is one question/answer pair
type QA struct {
	Q string `json:"q" yaml:"q"`
	A string `json:"a" yaml:"a"`
}

// BearValue returns the bear projection, 0 when absent
func (c *Company) BearValue() float64 {
	if c.Scenario == nil {
		return 0
	}
	return deref(c.Scenario.Bear)
}

// BaseValue returns the base projection, 0 when absent
func (c *Company) BaseValue() float64 {
	if c.Scenario == nil {
		return 0
	}
	return deref(c.Scenario.Base)
}

// BullValue returns the bull projection, 0 when absent
func (c *Company) BullValue() float64 {
	if c.Scenario == nil {
		return 0
	}
	return deref(c.Scenario.Bull)
}

// Float returns a pointer to v (document literals, tests)
func Float(v float64) *float64 {
	return &v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
