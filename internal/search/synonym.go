package search

// Synonyms maps folded user spellings to requirement flag names.
var Synonyms = map[string]string{
	"golang":          "go",
	"postgres":        "postgresql",
	"psql":            "postgresql",
	"mssql":           "sql_server",
	"ms sql":          "sql_server",
	"mariadb":         "maria_db",
	"db2":             "ibm_db2",
	"redshift":        "amazon_redshift",
	"bigquery":        "google_bigquery",
	"synapse":         "azure_synapse",
	"dynamodb":        "dynamo_db",
	"mongodb":         "mongo_db",
	"mongo":           "mongo_db",
	"couchdb":         "couch_db",
	"elasticsearch":   "elastic_search",
	"elastic":         "elastic_search",
	"neptune":         "amazon_neptune",
	"gcp":             "google_cloud",
	"powerbi":         "power_bi",
	"k8s":             "kubernetes",
	"sklearn":         "scikit-learn",
	"scikit learn":    "scikit-learn",
	"tensorflow":      "tensorflow/keras",
	"keras":           "tensorflow/keras",
	"torch":           "pytorch",
	"js":              "javascript",
	"cpp":             "c++",
	"csharp":          "c#",
	"ml":              "machine_learning",
	"dl":              "deep_learning",
	"cv":              "computer_vision",
	"nlp":             "natural_language_processing",
	"rl":              "reinforcement_learning",
	"recommender":     "recommender_systems",
	"statistics":      "math/statistics",
	"math":            "math/statistics",
	"mathematik":      "math/statistics",
	"informatik":      "computer_science",
	"time series":     "forecasting",
	"teamfahigkeit":   "teamwork",
	"kommunikation":   "communication",
	"problem solving": "critical_thinking",
	"self motivated":  "motivation",
	"hands on":        "initiative",
	"business acumen": "business_focus",
	"structured":      "structured_working",
	"phd":             "phd",
	"doctorate":       "phd",
	"masters":         "master",
	"msc":             "master",
	"bsc":             "bachelor",
	"bachelors":       "bachelor",
}
