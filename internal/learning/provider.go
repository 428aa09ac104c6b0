package learning

// LearningProvider is an external organisation delivering face-to-face learning,
// together with the policies it publishes.
type LearningProvider struct {
	ID                   string                `json:"id,omitempty"`
	Name                 string                `json:"name"`
	CancellationPolicies []*CancellationPolicy `json:"cancellationPolicies,omitempty"`
	TermsAndConditions   []*TermsAndConditions `json:"termsAndConditions,omitempty"`
}

type CancellationPolicy struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	ShortVersion string `json:"shortVersion"`
	FullVersion  string `json:"fullVersion"`
}

type TermsAndConditions struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

type LearningProviderFactory struct{}

func (f LearningProviderFactory) Create(data map[string]any) (*LearningProvider, error) {
	lp := &LearningProvider{
		ID:   getString(data, "id"),
		Name: getString(data, "name"),
	}

	rawPolicies, err := getList(data, "cancellationPolicies")
	if err != nil {
		return nil, constructionError("learningProvider", "", data, err)
	}
	for _, rp := range rawPolicies {
		p, err := CancellationPolicyFactory{}.Create(rp)
		if err != nil {
			return nil, err
		}
		lp.CancellationPolicies = append(lp.CancellationPolicies, p)
	}

	rawTerms, err := getList(data, "termsAndConditions")
	if err != nil {
		return nil, constructionError("learningProvider", "", data, err)
	}
	for _, rt := range rawTerms {
		t, err := TermsAndConditionsFactory{}.Create(rt)
		if err != nil {
			return nil, err
		}
		lp.TermsAndConditions = append(lp.TermsAndConditions, t)
	}
	return lp, nil
}

type CancellationPolicyFactory struct{}

func (f CancellationPolicyFactory) Create(data map[string]any) (*CancellationPolicy, error) {
	return &CancellationPolicy{
		ID:           getString(data, "id"),
		Name:         getString(data, "name"),
		ShortVersion: getString(data, "shortVersion"),
		FullVersion:  getString(data, "fullVersion"),
	}, nil
}

type TermsAndConditionsFactory struct{}

func (f TermsAndConditionsFactory) Create(data map[string]any) (*TermsAndConditions, error) {
	return &TermsAndConditions{
		ID:      getString(data, "id"),
		Name:    getString(data, "name"),
		Content: getString(data, "content"),
	}, nil
}
