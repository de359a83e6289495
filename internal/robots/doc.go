// Package robots builds robots.txt content from user-agent groups, sitemap
// references and a preferred host.
package robots
