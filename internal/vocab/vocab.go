// Package vocab holds the fixed vocabulary tables and compiled patterns shared by
// the CV and job posting analyzers. Everything here is built once at package init
// and never mutated, so any number of analyzers may read it concurrently.
package vocab

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	cvTechnologies = []string{
		"JavaScript", "TypeScript", "Python", "Java", "React", "Angular", "Vue", "Node.js",
		"Express", "MongoDB", "PostgreSQL", "MySQL", "AWS", "Azure", "Docker", "Kubernetes",
		"Git", "HTML", "CSS", "PHP", "Ruby", "C++", "C#", "Swift", "Kotlin", "Flutter",
		"Unity", "TensorFlow", "PyTorch", "Django", "Flask", "Laravel", "Spring", "Bootstrap",
		"Tailwind", "GraphQL", "REST", "API", "Microservices", "Agile", "Scrum", "DevOps",
		"CI/CD", "Machine Learning", "AI", "Data Science", "SQL", "NoSQL", "Redis",
		"Elasticsearch", "Jenkins", "Terraform", "Ansible", "Linux", "Windows", "macOS",
		"Android", "iOS", "React Native", "Next.js", "Nuxt.js", "Svelte", "Webpack", "Vite",
		"Babel", "ESLint", "Prettier", "Jest", "Cypress", "Selenium", "Figma", "Sketch",
		"Adobe", "Photoshop", "Illustrator", "Blockchain", "Cybersecurity", "Cloud Computing",
		"Big Data", "IoT", "AR", "VR",
	}

	postingTechnologies = []string{
		"JavaScript", "TypeScript", "Python", "Java", "React", "Angular", "Vue", "Svelte",
		"Node.js", "Express", "Fastify", "MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis",
		"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Git", "GitHub",
		"GitLab", "HTML", "CSS", "SCSS", "SASS", "Tailwind", "Bootstrap", "PHP", "Ruby",
		"Rails", "C++", "C#", ".NET", "Swift", "Kotlin", "Flutter", "Dart", "Unity",
		"TensorFlow", "PyTorch", "Pandas", "NumPy", "Django", "Flask", "FastAPI", "Laravel",
		"Spring", "Hibernate", "GraphQL", "REST", "API", "Microservices", "Agile", "Scrum",
		"Kanban", "DevOps", "CI/CD", "Jenkins", "GitHub Actions", "Terraform", "Ansible",
		"Linux", "Ubuntu", "CentOS", "Windows", "macOS", "Android", "iOS", "React Native",
		"Expo", "Next.js", "Nuxt.js", "Gatsby", "Webpack", "Vite", "Rollup", "Babel", "ESLint",
		"Prettier", "Jest", "Cypress", "Playwright", "Selenium", "Figma", "Sketch", "Adobe",
		"Photoshop", "Illustrator", "InDesign", "Blockchain", "Solidity", "Web3",
		"Machine Learning", "AI", "Data Science", "Big Data", "Apache", "Nginx",
		"Elasticsearch", "Kibana", "Grafana", "Prometheus", "Helm", "Istio", "Service Mesh",
		"Event Sourcing", "CQRS", "Domain Driven Design", "Clean Architecture",
		"Test Driven Development", "Behavior Driven Development", "Pair Programming",
		"Code Review", "Continuous Integration", "Continuous Deployment",
		"Blue Green Deployment", "Canary Deployment", "Feature Flags", "A/B Testing",
		"Performance Testing", "Load Testing", "Security Testing", "Penetration Testing",
		"OAuth", "JWT", "SAML", "LDAP", "Active Directory", "Single Sign On",
		"Multi Factor Authentication", "Encryption", "SSL", "TLS", "HTTPS", "Firewall", "VPN",
		"Network Security", "Cloud Security", "Data Privacy", "GDPR", "HIPAA", "SOC2",
		"ISO27001", "PCI DSS",
	}

	preferredTechnologies = []string{
		"JavaScript", "TypeScript", "Python", "Java", "React", "Angular", "Vue", "Node.js",
		"Express", "MongoDB", "PostgreSQL", "MySQL", "AWS", "Azure", "Docker", "Kubernetes",
		"Git", "HTML", "CSS", "PHP", "Ruby", "C++", "C#", "Swift", "Kotlin", "Flutter",
		"Unity", "TensorFlow", "PyTorch", "Django", "Flask", "Laravel", "Spring", "GraphQL",
		"REST", "API", "Microservices", "Agile", "Scrum", "DevOps", "CI/CD",
		"Machine Learning", "AI", "Data Science", "Cloud", "Blockchain", "Cybersecurity",
	}

	softSkills = []string{
		"leadership", "communication", "teamwork", "problem.solving", "analytical", "creative",
		"innovative", "collaborative", "adaptable", "organized", "detail.oriented",
		"time.management", "project.management", "critical.thinking", "decision.making",
		"negotiation", "presentation", "mentoring", "coaching", "strategic", "planning",
		"multitasking", "customer.service", "interpersonal", "emotional.intelligence",
		"conflict.resolution", "flexibility", "reliability", "initiative", "self.motivated",
		"results.driven", "goal.oriented", "performance.driven",
	}

	certificationIssuers = []string{
		"AWS", "Azure", "Google Cloud", "Certified", "Certification", "PMP", "Scrum Master",
		"CompTIA", "Cisco", "Microsoft", "Oracle", "Salesforce", "HubSpot", "Google Analytics",
		"Adobe Certified", "PMI", "CISSP", "CISM", "Security+", "Network+", "A+", "Linux+",
		"CCNA", "CCNP", "CCIE", "Red Hat", "Docker", "Kubernetes",
	}

	roleTitles = []string{
		"Software Engineer", "Developer", "Manager", "Lead", "Senior", "Junior", "Analyst",
		"Consultant", "Designer", "Architect", "Director", "VP", "CTO", "CEO", "Intern",
		"Coordinator", "Specialist", "Technician",
	}

	achievementVerbs = []string{
		"achieved", "increased", "reduced", "improved", "led", "managed", "developed",
		"implemented", "created", "built", "designed", "optimized", "automated", "streamlined",
		"delivered", "launched", "established", "initiated", "coordinated", "supervised",
		"mentored", "trained",
	}

	metricUnits = []string{
		"percent", "users", "customers", "revenue", "sales", "projects", "teams", "people",
		"hours", "days", "months", "years", "million", "billion", "thousand", "k", "m", "b",
	}

	quantificationUnits = []string{
		"percent", "users", "customers", "revenue", "sales", "projects", "teams", "people",
	}
)

var (
	// CVTechnologies matches technology names in a CV.
	CVTechnologies = termPattern(cvTechnologies)
	// PostingTechnologies matches technology names in a job posting.
	PostingTechnologies = termPattern(postingTechnologies)
	// PreferredTechnologies matches technology names inside "nice to have" spans.
	PreferredTechnologies = termPattern(preferredTechnologies)
	// SoftSkills matches soft-skill phrases; separators between words are free.
	SoftSkills = regexp.MustCompile(`(?i)\b(?:` + strings.Join(softSkills, "|") + `)\b`)
	// Certifications matches an issuer or credential name followed, within the same
	// sentence, by a certified/certification/certificate marker.
	Certifications = regexp.MustCompile(`(?i)` + alternation(certificationIssuers) + `[^.]*?(?:Certified|Certification|Certificate)`)
	// RoleTitles matches a title word and the rest of the phrase on its line.
	RoleTitles = regexp.MustCompile(`(?i)\b(?:` + quoteAll(roleTitles) + `)\b[\w \t]*`)
	// Companies captures the capitalised phrase after "at" or "@", up to an opening
	// parenthesis, a dash, a year or the end of the line.
	Companies = regexp.MustCompile(`(?m)(?:\bat|@)[ \t]+([A-Z][a-zA-Z \t&.,]+?)(?:[ \t]*\(|[ \t]*-|[ \t]*\d{4}|[ \t]*$)`)
	// Metrics matches a number followed by a unit.
	Metrics = regexp.MustCompile(`(?i)\d+(?:,\d{3})*(?:\.\d+)?[ \t]*(?:%|(?:` + strings.Join(metricUnits, "|") + `)\b)`)
	// Quantification reports whether a text carries any impact metric at all.
	Quantification = regexp.MustCompile(`(?i)\d+(?:,\d{3})*(?:\.\d+)?\s*(?:%|(?:` + strings.Join(quantificationUnits, "|") + `)\b)`)
	// Achievements matches a sentence led by an achievement verb through its terminator.
	Achievements = regexp.MustCompile(`(?i)\b(?:` + strings.Join(achievementVerbs, "|") + `)\b[^.!?]*[.!?]`)
	// BulletMarker matches a leading bullet or ordinal marker with trailing spaces.
	BulletMarker = regexp.MustCompile(`^(?:[•*-]|\d+\.)[ \t]*`)
	// Digits reports whether a text contains a number.
	Digits = regexp.MustCompile(`\d+`)
)

// termPattern builds a case-insensitive alternation over literal terms. Word
// boundaries are only applied on sides where the term starts or ends with a word
// character, so "C++" and ".NET" still match in running text.
func termPattern(terms []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + alternation(terms))
}

func alternation(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		part := regexp.QuoteMeta(term)
		if isWordRune(rune(term[0])) {
			part = `\b` + part
		}
		if isWordRune(rune(term[len(term)-1])) {
			part += `\b`
		}
		parts = append(parts, part)
	}
	return `(?:` + strings.Join(parts, "|") + `)`
}

func quoteAll(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	return strings.Join(quoted, "|")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
