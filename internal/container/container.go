package container

// Options holds all runtime configuration, parsed by humacli from flags and
// environment variables.
type Options struct {
	Port            int    `default:"8888"           help:"Port to listen on"                                     short:"p"`
	BaseURL         string `default:""               help:"Public base URL embedded in returned links (defaults to http://localhost:<port>)"`
	DatabaseURL     string `default:"postgres://localhost:5432/tokenlink" help:"PostgreSQL connection string"`
	RedisAddr       string `default:"localhost:6379" help:"Redis server address"                                  short:"r"`
	SigningSecret   string `default:""               help:"Secret used to sign redirect tokens (required)"`
	TokenTTL        int    `default:"0"              help:"Token lifetime in seconds, 0 issues tokens without expiry"`
	RateLimitMax    int    `default:"10"             help:"Default requests allowed per client per window"`
	RateLimitWindow int    `default:"60"             help:"Default rate limit window in seconds"`
	CacheTTL        int    `default:"300"            help:"Redirect lookup cache TTL in seconds"`
	LogFormat       string `default:"console"        help:"Log format: console or json"`
	StaticDir       string `default:"public"         help:"Directory of static dashboard assets (empty disables)"`
}
