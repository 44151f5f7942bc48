package constants

// Session / context keys
const (
	SessionCookieName    = "research_collab_session"
	ContextKeyUserID     = "user_id"
	SessionKeyOAuthState = "oauth_state"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Discord API endpoints
const (
	DiscordAuthorizeURL = "https://discord.com/api/oauth2/authorize"
	DiscordTokenURL     = "https://discord.com/api/oauth2/token"
	DiscordUserURL      = "https://discord.com/api/users/@me"
	DiscordAvatarCDN    = "https://cdn.discordapp.com/avatars"
)
