package vocab

import (
	"regexp"
	"slices"
)

// Industry maps a set of keywords to an industry name.
type Industry struct {
	Name     string
	Keywords []string
}

// VerbContext maps context words found in a bullet to replacement verbs, strongest first.
type VerbContext struct {
	Words []string
	Verbs []string
}

// MetricContext maps context words to a canned metric phrase.
type MetricContext struct {
	Name   string
	Words  []string
	Metric string
}

// DefaultIndustry is reported when no industry keyword is found.
const DefaultIndustry = "Technology"

var (
	weakPhrases = []string{
		"responsible for", "worked on", "helped with", "participated in", "involved in", "assisted with",
	}

	genericPhrases = []string{"hard worker", "team player", "detail oriented", "fast learner"}

	// Short list used by the dedup keyword variant.
	stopWords = []string{
		"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by", "from", "up",
		"about", "into", "through", "during", "before", "after", "above", "below", "between",
		"among", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do",
		"does", "did", "will", "would", "could", "should", "may", "might", "must", "can", "a", "an",
	}

	// Extended list used by the job posting frequency variant.
	postingStopWords = append(slices.Clone(stopWords),
		"this", "that", "these", "those", "our", "your", "their", "we", "you", "they", "i", "me",
		"my", "us", "him", "her", "his", "its", "who", "what", "when", "where", "why", "how",
	)

	industries = []Industry{
		{Name: "Financial Technology", Keywords: []string{"fintech", "financial", "banking", "payment", "trading", "cryptocurrency", "blockchain"}},
		{Name: "Healthcare", Keywords: []string{"healthcare", "medical", "hospital", "patient", "clinical", "pharma", "biotech"}},
		{Name: "E-commerce", Keywords: []string{"ecommerce", "e-commerce", "retail", "shopping", "marketplace", "consumer"}},
		{Name: "SaaS", Keywords: []string{"saas", "software as a service", "b2b", "enterprise", "cloud"}},
		{Name: "Gaming & Entertainment", Keywords: []string{"gaming", "game", "entertainment", "media", "streaming"}},
		{Name: "Education Technology", Keywords: []string{"education", "learning", "edtech", "student", "academic"}},
		{Name: "Startup", Keywords: []string{"startup", "early stage", "series a", "series b", "venture"}},
		{Name: "Consulting", Keywords: []string{"consulting", "agency", "services", "client work"}},
	}

	verbContexts = []VerbContext{
		{Words: []string{"develop", "build", "create"}, Verbs: []string{"Architected", "Engineered", "Developed"}},
		{Words: []string{"manage", "lead", "team"}, Verbs: []string{"Led", "Directed", "Managed"}},
		{Words: []string{"improve", "optimize", "enhance"}, Verbs: []string{"Optimized", "Enhanced", "Improved"}},
		{Words: []string{"implement", "deploy"}, Verbs: []string{"Implemented", "Deployed", "Executed"}},
		{Words: []string{"analyze", "research"}, Verbs: []string{"Analyzed", "Researched", "Investigated"}},
	}

	defaultVerbs = []string{"Delivered", "Achieved", "Accomplished"}

	metricContexts = []MetricContext{
		{Name: "performance", Words: []string{"performance", "speed", "load"}, Metric: "reduced load time by 40%"},
		{Name: "users", Words: []string{"user", "customer", "client"}, Metric: "impacting 10,000+ users"},
		{Name: "team", Words: []string{"team", "people", "member"}, Metric: "leading team of 5+ developers"},
		{Name: "cost", Words: []string{"cost", "budget", "save"}, Metric: "saving $50K annually"},
		{Name: "time", Words: []string{"time", "deadline", "schedule"}, Metric: "delivering 2 weeks ahead of schedule"},
		{Name: "revenue", Words: []string{"revenue", "sales", "profit"}, Metric: "contributing to 15% revenue increase"},
	}

	defaultMetric = MetricContext{Name: "general", Metric: "achieving 95% success rate"}
)

// Header phrase sets that open a requirement span in a job posting.
var (
	requiredHeaders       = []string{"required", "must have", "essential", "minimum", "qualifications"}
	preferredHeaders      = []string{"preferred", "nice to have", "bonus", "plus", "additional", "desired"}
	responsibilityHeaders = []string{"responsibilities", "duties", "role", "what you'll do", "day to day", "key tasks", "primary functions"}
	requirementHeaders    = []string{"requirements", "qualifications", "must have", "essential", "minimum", "experience", "skills", "what we're looking for"}
	benefitHeaders        = []string{"benefits", "perks", "what we offer", "compensation", "package", "rewards"}
)

func RequiredHeaders() []string       { return slices.Clone(requiredHeaders) }
func PreferredHeaders() []string      { return slices.Clone(preferredHeaders) }
func ResponsibilityHeaders() []string { return slices.Clone(responsibilityHeaders) }
func RequirementHeaders() []string    { return slices.Clone(requirementHeaders) }
func BenefitHeaders() []string        { return slices.Clone(benefitHeaders) }

// Experience level cues. "lead" is matched as a whole word so that "leadership"
// or "leading" do not promote a posting.
var (
	SeniorLevel    = regexp.MustCompile(`\b(?:senior|principal)\b|\bsr\.`)
	LeadLevel      = regexp.MustCompile(`\b(?:team lead|tech lead|technical lead|lead)\b`)
	ExecutiveLevel = regexp.MustCompile(`\b(?:director|vp|cto|head of|chief)\b`)
	EntryLevel     = regexp.MustCompile(`\b(?:junior|entry|graduate|intern|internship)\b|\bjr\.`)
	YearsRequired  = regexp.MustCompile(`\b(\d+)\+?\s*years?\s*(?:of\s*)?experience`)
	FewYears       = regexp.MustCompile(`\b[0-2]\s*years?\s*(?:of\s*)?experience`)
)

// WeakPhrases returns the passive phrasing flagged in CV bullets.
func WeakPhrases() []string { return slices.Clone(weakPhrases) }

// GenericPhrases returns clichés that add no specific information.
func GenericPhrases() []string { return slices.Clone(genericPhrases) }

// StopWords returns the short stop-word list.
func StopWords() []string { return slices.Clone(stopWords) }

// PostingStopWords returns the extended stop-word list used for job postings.
func PostingStopWords() []string { return slices.Clone(postingStopWords) }

// Industries returns the industry table in priority order.
func Industries() []Industry {
	out := make([]Industry, 0, len(industries))
	for _, ind := range industries {
		out = append(out, Industry{Name: ind.Name, Keywords: slices.Clone(ind.Keywords)})
	}
	return out
}

// VerbContexts returns strong verb choices in priority order.
func VerbContexts() []VerbContext {
	out := make([]VerbContext, 0, len(verbContexts))
	for _, vc := range verbContexts {
		out = append(out, VerbContext{Words: slices.Clone(vc.Words), Verbs: slices.Clone(vc.Verbs)})
	}
	return out
}

// DefaultVerbs are used when a bullet has no recognised context.
func DefaultVerbs() []string { return slices.Clone(defaultVerbs) }

// MetricContexts returns metric suggestions in priority order.
func MetricContexts() []MetricContext {
	out := make([]MetricContext, 0, len(metricContexts))
	for _, mc := range metricContexts {
		out = append(out, MetricContext{Name: mc.Name, Words: slices.Clone(mc.Words), Metric: mc.Metric})
	}
	return out
}

// DefaultMetric is used when no metric context matches.
func DefaultMetric() MetricContext { return defaultMetric }
