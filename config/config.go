package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Will be set by go-build
var (
	Version string
	Rev     string
)

//go:embed crypto_tracker.example.yml
var exampleConfig string

const envPrefix = "CRYPTO_TRACKER"

// Parse reads flags, the optional config file and the environment. It is meant
// to be called once from main.
func Parse() *Config {
	// Set log format
	formatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	}
	logrus.SetFormatter(formatter)
	logrus.SetOutput(colorable.NewColorableStderr()) // For Windows

	showVersion := pflag.BoolP("version", "v", false, "Show version number")
	showHelp := pflag.BoolP("help", "h", false, "Show usage message")
	pflag.CommandLine.MarkHidden("help")
	pflag.BoolP("debug", "d", false, "Enable debug mode")
	pflag.BoolP("list-sources", "l", false, "List supported page sources")

	var configFile string
	pflag.StringVarP(&configFile, "config-file", "c", "", `Config file path, use "--example-config-file <path>" `+
		"to generate an example config file,\n"+
		"by default crypto_tracker.yml in current directory, $HOME or /etc is used")
	var exampleConfigFile string
	pflag.StringVar(&exampleConfigFile, "example-config-file", "",
		"Generate example config file to the specified file path, by default it outputs to stdout")
	pflag.Lookup("example-config-file").NoOptDefVal = "-"

	pflag.Bool("headless", false, "Run the browser without a window")
	pflag.IntP("top-n", "n", 10, "Number of table rows to scrape")
	pflag.StringP("proxy", "p", "", "Proxy used by the browser and HTTP source \n(eg. "+
		"\"http://localhost:7777\", \"socks5://localhost:1080\")")
	pflag.CommandLine.SortFlags = false
	pflag.Usage = showUsageAndExit
	pflag.Parse()

	if *showHelp {
		showUsageAndExit()
	}

	if *showVersion {
		fmt.Fprintf(os.Stderr, "Version %s", Version)
		if Rev != "" {
			fmt.Fprintf(os.Stderr, ", build %s", Rev)
		}
		fmt.Fprintln(os.Stderr)
		os.Exit(0)
	}

	if exampleConfigFile != "" {
		writeExampleConfig(exampleConfigFile)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Error reading .env file: %v", err)
	}

	v := viper.New()
	bindFlags(v, pflag.CommandLine)
	// Set configure file
	v.SetConfigName("crypto_tracker") // name of config file (without extension)
	v.AddConfigPath(".")              // path to look for the config file in
	v.AddConfigPath("$HOME")          // optionally look for config in the HOME directory
	v.AddConfigPath("/etc")           // and /etc
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Defaults are enough to run
		default:
			logrus.Warnf("Error reading config file: %v", err)
		}
	}

	cfg, err := Load(v)
	if err != nil {
		logrus.Fatalf("Failed to parse %q, error: %s\n", v.ConfigFileUsed(), err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugln("Using config file:", v.ConfigFileUsed())
	return cfg
}

// Load fills a Config from v, falling back to defaults and CRYPTO_TRACKER_* env vars
func Load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TopN <= 0 {
		return errors.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.WaitTimeout <= 0 {
		return errors.Errorf("wait_timeout must be positive, got %s", c.WaitTimeout)
	}
	if c.DPI <= 0 {
		return errors.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if len(c.CSVCandidates) == 0 {
		return errors.New("csv_candidates must not be empty")
	}
	c.Source = strings.ToLower(c.Source)
	if c.Source == SourceFile && c.HTMLFile == "" {
		return errors.New("html_file is required by the file source")
	}
	return nil
}

// Flags use dashes, config keys use underscores
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func showUsageAndExit() {
	// Print usage message and exit
	fmt.Fprintf(os.Stderr, "\nUsage: %s [Options]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "\nScrape the top cryptocurrencies, save a CSV snapshot and draw price charts")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	pflag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nEvery option can also be set in the config file or as CRYPTO_TRACKER_<OPTION>.")
	os.Exit(0)
}

func writeExampleConfig(fpath string) {
	fout, err := os.Stdout, error(nil)
	if fpath != "-" {
		if _, err := os.Stat(fpath); err == nil {
			logrus.Warnf("%s already exists, skipping", fpath)
			return
		}
		if fout, err = os.Create(fpath); err != nil {
			logrus.Errorf("Failed to create config file %s, error: %v", fpath, err)
			return
		}
		defer fout.Close()
	}
	if _, err := fout.WriteString(exampleConfig); err != nil {
		logrus.Errorf("Failed to write config file %s, error: %v", fpath, err)
	} else if fout != os.Stdout {
		logrus.Infof("Write example config file to %s", fpath)
	}
}

func ListSourcesAndExit(sources []string) {
	fmt.Fprintln(os.Stderr, "Supported page sources:")
	for _, name := range sources {
		fmt.Fprintf(os.Stderr, " %s\n", name)
	}
	os.Exit(0)
}
