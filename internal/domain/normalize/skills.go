package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// skillLexicon is the curated set of skills worth tracking across
// postings. Keys are the lowercased match terms, values the display form.
var skillLexicon = map[string]string{
	"golang":           "Go",
	"go":               "Go",
	"python":           "Python",
	"java":             "Java",
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"ruby":             "Ruby",
	"rails":            "Rails",
	"rust":             "Rust",
	"c++":              "C++",
	"c#":               "C#",
	"php":              "PHP",
	"swift":            "Swift",
	"kotlin":           "Kotlin",
	"scala":            "Scala",
	"elixir":           "Elixir",
	"react":            "React",
	"vue":              "Vue",
	"angular":          "Angular",
	"node.js":          "Node.js",
	"nodejs":           "Node.js",
	"django":           "Django",
	"flask":            "Flask",
	"graphql":          "GraphQL",
	"grpc":             "gRPC",
	"rest":             "REST",
	"sql":              "SQL",
	"postgres":         "PostgreSQL",
	"postgresql":       "PostgreSQL",
	"mysql":            "MySQL",
	"mongodb":          "MongoDB",
	"redis":            "Redis",
	"elasticsearch":    "Elasticsearch",
	"kafka":            "Kafka",
	"rabbitmq":         "RabbitMQ",
	"spark":            "Spark",
	"airflow":          "Airflow",
	"snowflake":        "Snowflake",
	"dbt":              "dbt",
	"docker":           "Docker",
	"kubernetes":       "Kubernetes",
	"k8s":              "Kubernetes",
	"terraform":        "Terraform",
	"ansible":          "Ansible",
	"aws":              "AWS",
	"gcp":              "GCP",
	"azure":            "Azure",
	"linux":            "Linux",
	"git":              "Git",
	"ci/cd":            "CI/CD",
	"prometheus":       "Prometheus",
	"grafana":          "Grafana",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"nlp":              "NLP",
	"pytorch":          "PyTorch",
	"tensorflow":       "TensorFlow",
	"etl":              "ETL",
	"ios":              "iOS",
	"android":          "Android",
	"figma":            "Figma",
	"salesforce":       "Salesforce",
	"excel":            "Excel",
	"tableau":          "Tableau",
	"looker":           "Looker",
}

// skillPatterns matches each lexicon term on word boundaries so that
// "java" does not fire inside "javascript" or "go" inside "django".
var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(skillLexicon))
	for term := range skillLexicon {
		patterns[term] = regexp.MustCompile(`(^|[^a-z0-9+#])` + regexp.QuoteMeta(term) + `($|[^a-z0-9+#])`)
	}
	return patterns
}

// Skills extracts lexicon skills from a posting title and description.
// HTML markup in the description is stripped before matching. The result
// is deduplicated and sorted.
func Skills(title, description string) []string {
	haystack := strings.ToLower(title + " " + HTMLToText(description))

	found := make(map[string]bool)
	for term, display := range skillLexicon {
		if skillPatterns[term].MatchString(haystack) {
			found[display] = true
		}
	}

	if len(found) == 0 {
		return nil
	}
	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}
