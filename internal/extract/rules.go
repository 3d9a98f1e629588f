package extract

// Requirement categories, named after the dashboard groups.
const (
	CategoryLanguages  = "languages"
	CategoryTools      = "tools"
	CategoryDatabases  = "databases"
	CategoryLibraries  = "libraries"
	CategoryDegree     = "degree"
	CategoryMajor      = "major"
	CategoryKnowledge  = "knowledge"
	CategorySoftSkills = "soft_skills"
)

// Degree flags. Bachelor and NoDegreeInfo are resolved after matching.
const (
	DegreeBachelor     = "bachelor"
	DegreeMaster       = "master"
	DegreePhD          = "phd"
	DegreeNoDegreeInfo = "no_degree_info"
)

// RequirementRules is the catalogue of requirement flags in output column
// order. Expressions are case-insensitive except for CaseSensitive rules.
var RequirementRules = []Rule{
	{Name: "python", Category: CategoryLanguages, Kind: Substring, Expr: "Python"},
	{Name: "r", Category: CategoryLanguages, Kind: Pattern, Expr: nonWordChar + `R(` + nonWordChar + `|Studio)`},
	{Name: "sql", Category: CategoryLanguages, Kind: Lookaround, Expr: `(?<!No)SQL`},
	{Name: "java", Category: CategoryLanguages, Kind: Substring, Expr: "Java "},
	{Name: "javascript", Category: CategoryLanguages, Kind: Substring, Expr: "Javascript"},
	{Name: "c", Category: CategoryLanguages, Kind: Pattern, Expr: nonWordChar + `C `},
	{Name: "c++", Category: CategoryLanguages, Kind: Substring, Expr: "C++"},
	{Name: "c#", Category: CategoryLanguages, Kind: Substring, Expr: "C#"},
	{Name: "scala", Category: CategoryLanguages, Kind: Substring, Expr: "Scala "},
	{Name: "julia", Category: CategoryLanguages, Kind: Substring, Expr: "Julia"},
	{Name: "matlab", Category: CategoryLanguages, Kind: Substring, Expr: "Matlab"},
	{Name: "swift", Category: CategoryLanguages, Kind: Substring, Expr: "Swift"},
	{Name: "go", Category: CategoryLanguages, Kind: CaseSensitive, Expr: nonWordChar + `Go |Golang`},
	{Name: "perl", Category: CategoryLanguages, Kind: Substring, Expr: "Perl"},
	{Name: "php", Category: CategoryLanguages, Kind: Substring, Expr: "Php"},
	{Name: "html", Category: CategoryLanguages, Kind: Substring, Expr: "HTML"},
	{Name: "css", Category: CategoryLanguages, Kind: Substring, Expr: "CSS"},
	{Name: "rust", Category: CategoryLanguages, Kind: Pattern, Expr: nonWordChar + `Rust` + nonWordChar},

	{Name: "excel", Category: CategoryTools, Kind: CaseSensitive, Expr: `Excel`},
	{Name: "tableau", Category: CategoryTools, Kind: Substring, Expr: "Tableau"},
	{Name: "power_bi", Category: CategoryTools, Kind: Pattern, Expr: `Power ?BI|PBI`},
	{Name: "spark", Category: CategoryTools, Kind: Substring, Expr: "Spark"},
	{Name: "hadoop", Category: CategoryTools, Kind: Substring, Expr: "Hadoop"},
	{Name: "hive", Category: CategoryTools, Kind: Substring, Expr: "Hive"},
	{Name: "aws", Category: CategoryTools, Kind: Pattern, Expr: `AWS|Amazon ?Web ?Services|Redshift`},
	{Name: "kafka", Category: CategoryTools, Kind: Substring, Expr: "Kafka"},
	{Name: "azure", Category: CategoryTools, Kind: Pattern, Expr: `Azure|Synapse`},
	{Name: "google_cloud", Category: CategoryTools, Kind: Pattern, Expr: `Google ?Cloud|GCP|Big ?query`},
	{Name: "docker", Category: CategoryTools, Kind: Substring, Expr: "Docker"},
	{Name: "git", Category: CategoryTools, Kind: Pattern, Expr: nonWordChar + `Git`},
	{Name: "linux", Category: CategoryTools, Kind: Pattern, Expr: `Linux|Unix|Bash|Shell`},
	{Name: "kubernetes", Category: CategoryTools, Kind: Substring, Expr: "Kubernetes"},
	{Name: "jenkins", Category: CategoryTools, Kind: Substring, Expr: "Jenkins"},
	{Name: "airflow", Category: CategoryTools, Kind: Substring, Expr: "Airflow"},
	{Name: "databricks", Category: CategoryTools, Kind: Substring, Expr: "Databricks"},
	{Name: "sas", Category: CategoryTools, Kind: Pattern, Expr: nonWordChar + `Sas` + nonWordChar},
	{Name: "spss", Category: CategoryTools, Kind: Substring, Expr: "Spss"},
	{Name: "terraform", Category: CategoryTools, Kind: Substring, Expr: "Terraform"},
	{Name: "ansible", Category: CategoryTools, Kind: Substring, Expr: "Ansible"},
	{Name: "puppet", Category: CategoryTools, Kind: Substring, Expr: "Puppet"},
	{Name: "mlflow", Category: CategoryTools, Kind: Substring, Expr: "Mlflow"},
	{Name: "kubeflow", Category: CategoryTools, Kind: Substring, Expr: "Kubeflow"},
	{Name: "splunk", Category: CategoryTools, Kind: Substring, Expr: "Splunk"},
	{Name: "talend", Category: CategoryTools, Kind: Substring, Expr: "Talend"},
	{Name: "prometheus", Category: CategoryTools, Kind: Substring, Expr: "Prometheus"},
	{Name: "grafana", Category: CategoryTools, Kind: Substring, Expr: "Grafana"},
	{Name: "flink", Category: CategoryTools, Kind: Substring, Expr: "Flink"},
	{Name: "storm", Category: CategoryTools, Kind: Substring, Expr: "Storm"},
	{Name: "looker", Category: CategoryTools, Kind: Substring, Expr: "Looker"},

	{Name: "mysql", Category: CategoryDatabases, Kind: Pattern, Expr: `My ?SQL`},
	{Name: "postgresql", Category: CategoryDatabases, Kind: Substring, Expr: "Postgre"},
	{Name: "oracle", Category: CategoryDatabases, Kind: Substring, Expr: "Oracle"},
	{Name: "sql_server", Category: CategoryDatabases, Kind: Pattern, Expr: `SQL ?Server`},
	{Name: "maria_db", Category: CategoryDatabases, Kind: Pattern, Expr: `Maria ?DB`},
	{Name: "sqlite", Category: CategoryDatabases, Kind: Substring, Expr: "Sqlite"},
	{Name: "ibm_db2", Category: CategoryDatabases, Kind: Substring, Expr: "DB2"},
	{Name: "amazon_redshift", Category: CategoryDatabases, Kind: Substring, Expr: "Redshift"},
	{Name: "google_bigquery", Category: CategoryDatabases, Kind: Pattern, Expr: `Big ?Query`},
	{Name: "azure_synapse", Category: CategoryDatabases, Kind: Substring, Expr: "Synapse"},
	{Name: "snowflake", Category: CategoryDatabases, Kind: Substring, Expr: "Snowflake"},
	{Name: "redis", Category: CategoryDatabases, Kind: Substring, Expr: "Redis"},
	{Name: "dynamo_db", Category: CategoryDatabases, Kind: Pattern, Expr: `Dynamo ?DB`},
	{Name: "mongo_db", Category: CategoryDatabases, Kind: Pattern, Expr: `Mongo ?DB`},
	{Name: "firebase", Category: CategoryDatabases, Kind: Substring, Expr: "Firebase"},
	{Name: "couch_db", Category: CategoryDatabases, Kind: Pattern, Expr: `Couch ?DB|Couchbase`},
	{Name: "cassandra", Category: CategoryDatabases, Kind: Substring, Expr: "Cassandra"},
	{Name: "hbase", Category: CategoryDatabases, Kind: Pattern, Expr: `H ?Base`},
	{Name: "neo4j", Category: CategoryDatabases, Kind: Substring, Expr: "Neo4j"},
	{Name: "amazon_neptune", Category: CategoryDatabases, Kind: Pattern, Expr: `Amazon ?Neptune`},
	{Name: "elastic_search", Category: CategoryDatabases, Kind: Pattern, Expr: `Elastic ?Search`},

	{Name: "pandas", Category: CategoryLibraries, Kind: Substring, Expr: "Pandas"},
	{Name: "numpy", Category: CategoryLibraries, Kind: Substring, Expr: "Numpy"},
	{Name: "tensorflow/keras", Category: CategoryLibraries, Kind: Pattern, Expr: `Tensorflow|Keras`},
	{Name: "pytorch", Category: CategoryLibraries, Kind: Substring, Expr: "Pytorch"},
	{Name: "matplotlib", Category: CategoryLibraries, Kind: Substring, Expr: "Matplotlib"},
	{Name: "seaborn", Category: CategoryLibraries, Kind: Substring, Expr: "Seaborn"},
	{Name: "scikit-learn", Category: CategoryLibraries, Kind: Pattern, Expr: `(scikit[ -]?learn|sklearn)`},
	{Name: "plotly", Category: CategoryLibraries, Kind: Substring, Expr: "plotly"},
	{Name: "streamlit", Category: CategoryLibraries, Kind: Pattern, Expr: `stream[ -]lit`},
	{Name: "spacy", Category: CategoryLibraries, Kind: Substring, Expr: "spacy"},
	{Name: "nltk", Category: CategoryLibraries, Kind: Substring, Expr: "nltk"},
	{Name: "scipy", Category: CategoryLibraries, Kind: Substring, Expr: "scipy"},
	{Name: "statsmodels", Category: CategoryLibraries, Kind: Substring, Expr: "statsmodels"},
	{Name: "flask", Category: CategoryLibraries, Kind: Substring, Expr: "flask"},
	{Name: "fastapi", Category: CategoryLibraries, Kind: Pattern, Expr: `fast ?api`},
	{Name: "dask", Category: CategoryLibraries, Kind: Substring, Expr: "dask"},
	{Name: "xgboost", Category: CategoryLibraries, Kind: Pattern, Expr: `xg ?boost|light ?gbm`},
	{Name: "pyspark", Category: CategoryLibraries, Kind: Substring, Expr: "pyspark"},

	{Name: DegreeMaster, Category: CategoryDegree, Kind: Pattern, Expr: `(master|diplom)`},
	{Name: DegreePhD, Category: CategoryDegree, Kind: Pattern, Expr: `(doktor|phd|promotion)`},
	{Name: DegreeBachelor, Category: CategoryDegree, Kind: Pattern, Expr: `(Studium|degree|Hochschulabschluss|studiert|Studienabschluss|studies|bachelor)`},

	{Name: "computer_science", Category: CategoryMajor, Kind: Pattern, Expr: `(computer science|informatik|informatics)`},
	{Name: "math/statistics", Category: CategoryMajor, Kind: Pattern, Expr: `(math|Statistik|statistics|stats)`},
	{Name: "natural_science", Category: CategoryMajor, Kind: Pattern, Expr: `(Physik|physics|Naturwissenschaft|natural science|Chemie|chemistry|Biologie|biology|natur-)`},
	{Name: "engineering", Category: CategoryMajor, Kind: Pattern, Expr: `(Ingenieurwesen|Ingenieurwissenschaft|Engineering)`},
	{Name: "business", Category: CategoryMajor, Kind: Pattern, Expr: `(bwl|Betriebswirtschaft|vwl|Volkswirtschaft|Wirtschaftswissenschaft)`},

	{Name: "machine_learning", Category: CategoryKnowledge, Kind: Pattern, Expr: `(Machine Learning|Machinelle[sn]? Lern)`},
	{Name: "deep_learning", Category: CategoryKnowledge, Kind: Pattern, Expr: `Deep Learning|Neural|Neuronal`},
	{Name: "computer_vision", Category: CategoryKnowledge, Kind: Pattern, Expr: `computer vision|convolution|cnn|image processing|Bildverarbeitung`},
	{Name: "natural_language_processing", Category: CategoryKnowledge, Kind: Pattern, Expr: `nlp|natural language|speech recognition|Spracherkennung`},
	{Name: "autonomous_driving", Category: CategoryKnowledge, Kind: Pattern, Expr: `autonomous driving|autonomes fahren`},
	{Name: "robotics", Category: CategoryKnowledge, Kind: Substring, Expr: "roboti"},
	{Name: "reinforcement_learning", Category: CategoryKnowledge, Kind: Substring, Expr: "reinforcement"},
	{Name: "regression", Category: CategoryKnowledge, Kind: Substring, Expr: "regression"},
	{Name: "classification", Category: CategoryKnowledge, Kind: Pattern, Expr: `classification|Klassifikation|Klassifizierung`},
	{Name: "clustering", Category: CategoryKnowledge, Kind: Substring, Expr: "cluster"},
	{Name: "forecasting", Category: CategoryKnowledge, Kind: Pattern, Expr: `forecast|time ?series|Zeitreihe`},
	{Name: "recommender_systems", Category: CategoryKnowledge, Kind: Pattern, Expr: `recommender system|recommendation system|Empfehlungssystem`},
	{Name: "anomaly_detection", Category: CategoryKnowledge, Kind: Pattern, Expr: `anomaly|Anomalie`},

	{Name: "communication", Category: CategorySoftSkills, Kind: Pattern, Expr: `communication| Kommunikation|storytelling`},
	{Name: "teamwork", Category: CategorySoftSkills, Kind: Pattern, Expr: `teamfähig|teamplay|teamwork|teamorient|interpersonal|zwischenmenschlich`},
	{Name: "motivation", Category: CategorySoftSkills, Kind: Pattern, Expr: `motivation |Neugier|curiosity|lernbereit|to learn|persönlich` + nonSpace + `* weiterentwick|Engagement|Leidenschaft|passion`},
	{Name: "critical_thinking", Category: CategorySoftSkills, Kind: Pattern, Expr: `(analytisch|struktur|logisch|kritisch)` + nonSpace + `* denk|(analytic|structur|logic|critical)` + nonSpace + `* think|Auffassungsgabe|problemlös|problem solv`},
	{Name: "creativity", Category: CategorySoftSkills, Kind: Pattern, Expr: `kreativität|creativity`},
	{Name: "leadership", Category: CategorySoftSkills, Kind: Pattern, Expr: `Führungs(kraft|stärke|kompetenz)|leadership skill|verantwortungsbereit`},
	{Name: "flexibility", Category: CategorySoftSkills, Kind: Pattern, Expr: `belastbarkeit|flexibilit|anpassungsfähig`},
	{Name: "business_focus", Category: CategorySoftSkills, Kind: Pattern, Expr: `unternehmerisch|Geschäftssinn`},
	{Name: "initiative", Category: CategorySoftSkills, Kind: Pattern, Expr: `(selbst|eigen)ständig|eigen(initiative|verantwortung)`},
	{Name: "structured_working", Category: CategorySoftSkills, Kind: Pattern, Expr: `(struktur|strategi|orientiert)` + nonSpace + `* Arbeit|sorgfalt|sorgfältig|(slebst|Zeit|time )manage`},
}
