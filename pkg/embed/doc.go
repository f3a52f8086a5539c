// Package embed renders fetched Pardot artifacts as HTML for a page.
//
// The client package returns raw artifacts: a form's iframe embed code, a
// dynamic-content URL and the account tracking-code template. The functions
// here adapt them to a placement:
//
//	html := embed.FormHTML(code, embed.FormOptions{Height: "500px", Class: "signup"})
//	div := embed.DynamicContentHTML(url, embed.DynamicContentOptions{Default: "Loading"})
//	script := embed.TrackingCode(template, settings.Settings{CampaignID: "42"})
//
// All functions are pure and return an empty string for empty input.
package embed
