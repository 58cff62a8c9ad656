package config

import "github.com/jonathan/jobmarket/internal/types"

// Default API settings.
const (
	DefaultBaseURL           = "https://api.adzuna.com/v1/api/jobs"
	DefaultCountry           = "gb"
	DefaultResultsPerPage    = 50
	DefaultMaxPages          = 20
	DefaultMaxDaysOld        = 60
	DefaultTimeoutSeconds    = 30
	DefaultRequestsPerSecond = 1.0
	DefaultUserAgent         = "Mozilla/5.0 (compatible; JobMarket/1.0)"
)

// Default clustering and display settings.
const (
	DefaultK                = 4
	DefaultDBSCANEps        = 0.5
	DefaultDBSCANMinSamples = 5
	DefaultClusterColumn    = "cluster_kmeans"
	DefaultMapZoom          = 6
)

// Countries lists the API country codes the pipeline knows about.
var Countries = map[string]string{
	"gb": "United Kingdom",
	"us": "United States",
}

func float64Ptr(v float64) *float64 { return &v }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:           DefaultBaseURL,
			Country:           DefaultCountry,
			ResultsPerPage:    DefaultResultsPerPage,
			MaxPages:          DefaultMaxPages,
			MaxDaysOld:        DefaultMaxDaysOld,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: float64Ptr(DefaultRequestsPerSecond),
			UserAgent:         DefaultUserAgent,
		},
		Categories: []types.Query{
			{JobType: "data", What: "data", Category: "it-jobs"},
			{JobType: "ai", What: "ai", Category: "it-jobs"},
			{JobType: "healthcare", What: "", Category: "healthcare-nursing-jobs"},
		},
		Vocabulary: DefaultVocabulary(),
		Clustering: ClusteringConfig{
			DefaultK:         DefaultK,
			DBSCANEps:        DefaultDBSCANEps,
			DBSCANMinSamples: DefaultDBSCANMinSamples,
			Column:           DefaultClusterColumn,
		},
		Map: MapConfig{
			Center: []float64{54.5, -3},
			Zoom:   DefaultMapZoom,
			Colors: []string{"red", "blue", "green", "purple", "orange", "darkred"},
		},
		Paths: Paths{
			Raw:         "data/raw/jobs_raw_full.csv",
			RawSample:   "data/raw/jobs_raw_sample.csv",
			Clean:       "data/processed/jobs_clean.csv",
			CleanSample: "data/processed/jobs_clean_sample.csv",
			Clustered:   "data/processed/jobs_with_clusters.csv",
			ReportsDir:  "reports",
		},
	}
}

// DefaultVocabulary returns the skill vocabularies, context words and title keywords.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		TechSkills: []string{
			"python", "sql", "machine learning", "excel", "tableau", "power bi",
			"java", "tensorflow", "pytorch", "data analysis", "statistics",
			"cloud", "aws", "azure", "r programming", "spark", "hadoop",
			"automation", "agent", "artificial intelligence", "ai", "big data", "api",
			"data mining", "data science", "deep learning", "docker", "git", "kubernetes",
			"linux", "nosql", "pandas", "numpy", "scikit-learn", "visualization", "etl",
			"rag", "llm", "large language model", "gpt",
		},
		HealthcareSkills: []string{
			"nursing", "patient care", "healthcare", "clinical", "medication",
			"empathy", "communication", "medical", "patient safety",
			"health education", "patient assessment",
		},
		TechContext:       []string{"programming", "development", "software", "code", "algorithm", "data"},
		HealthcareContext: []string{"patient", "clinical", "medical", "healthcare", "nursing", "hospital"},
		// "it" is left out: substring counting would hit "community", "city", "recruitment".
		TechTitleKeywords: []string{
			"data", "software", "developer", "engineer", "analyst",
			"python", "java", "programmer", "technology",
		},
		HealthcareTitleKeywords: []string{
			"nurse", "nursing", "care", "health", "medical",
			"patient", "clinical", "healthcare", "hospital", "doctor",
		},
	}
}
