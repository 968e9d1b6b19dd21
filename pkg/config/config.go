package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB              string // connection string for the database
	WaitForServices string // duration to wait for other services to be ready
	LogLevel        string // sets the log level (zap log level values)
	SQLLogLevel     string // sets the log level for sql subsystem
	LogFormat       string // text vs json
	LogFilter       string // zapfilter rules, e.g. "*:* -debug:playback"

	Source         string  // where race data is read from (file, db)
	TrackFile      string  // csv with track outline, empty: builtin track
	DataFile       string  // csv with lap data
	TeamColorsFile string  // yaml file with team colors
	CircleRadius   float64 // use a circle track with this radius if > 0
	CirclePoints   int     // number of points of the circle track
	RaceKey        string  // key of the race in the database
	RaceName       string  // name of the race (import)
	Replace        bool    // delete an existing race with the same key (import)

	Samples     int     // number of race clock values
	Fast        bool    // use the reduced number of samples
	Interval    string  // time between two frames
	MaxTime     float64 // override upper bound of the race clock, 0: max race time
	Interactive bool    // toggle pause with enter on stdin

	Output         []string // frame sinks (console, jsonl, nats, log)
	OutputFile     string   // target of jsonl sink, "-" is stdout
	OutputEvery    int      // only every n-th frame is sent to text/json sinks
	LeaderboardTop int      // number of leaderboard lines of the console sink

	NatsURL    string // NATS server url
	NatsPrefix string // subject prefix for published frames
	NatsBucket string // key value bucket for final results, empty: none
)

const (
	SourceFile = "file"
	SourceDB   = "db"

	FastSamples = 2000
)
