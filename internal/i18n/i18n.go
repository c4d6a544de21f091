package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "en-IN"

var messages = map[string]map[string]string{
	"en-IN": enMessages,
}

var enMessages = map[string]string{
	"error.bad_request":                  "Invalid request",
	"error.unauthorized":                 "Please sign in to continue",
	"error.forbidden":                    "You do not have access to this resource",
	"error.not_found":                    "Resource not found",
	"error.internal":                     "Something went wrong, please try again",
	"error.auth_header_missing":          "Session token is missing",
	"error.auth_header_invalid":          "Session token is malformed",
	"error.token_invalid":                "Session token is invalid",
	"error.session_not_found":            "Session has expired, please start a new one",
	"error.session_create_failed":        "Could not start a session",
	"error.jwt_secret_missing":           "Session signing is not configured",
	"error.invalid_credentials":          "Invalid email, password or role",
	"error.invalid_role":                 "Role is not allowed",
	"error.email_invalid":                "Email address is invalid",
	"error.password_required":            "Password is required",
	"error.email_taken":                  "An account with this email already exists",
	"error.login_failed":                 "Login failed",
	"error.register_failed":              "Registration failed",
	"error.login_too_many":               "Too many login attempts, retry in %d seconds",
	"error.rate_limited":                 "Too many requests, retry in %d seconds",
	"error.rate_limit_unavailable":       "Rate limiter unavailable",
	"error.shop_not_found":               "Shop not found",
	"error.product_not_found":            "Product not found",
	"error.catalog_unavailable":          "Catalog is not loaded",
	"error.visit_request_not_found":      "Visit request not found",
	"error.visit_request_status_invalid": "Visit request cannot move to that status",
	"error.visit_request_create_failed":  "Could not create the visit request",
	"error.visit_request_fetch_failed":   "Could not load visit requests",
	"error.visit_request_action_invalid": "Unknown visit request action",
	"error.forbidden_shop":               "You can only manage your own shop",
	"error.dashboard_fetch_failed":       "Could not load the dashboard",
	"error.request_timeout":              "Request was cancelled",
}

// ResolveLocale 从 Accept-Language 解析语言，未支持时回退默认语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		for locale := range messages {
			if strings.EqualFold(locale, tag) {
				return locale
			}
		}
	}
	return DefaultLocale
}

// T 翻译消息 key，未命中时返回 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
