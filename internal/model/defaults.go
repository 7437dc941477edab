package model

// DefaultSources is the bootstrap source set for a fresh install.
// Weight: 1.0 = normal, >1 = more trusted, <1 = less trusted.
var DefaultSources = []Source{
	{Name: "Hacker News", Type: SourceHN, Tags: "Startups,Engineering", Weight: 1.4, Active: true},
	{Name: "Reddit /r/programming", Type: SourceReddit, Handle: "programming", Tags: "Community", Weight: 1.1, Active: true},
	{Name: "TechCrunch", Type: SourceRSS, URL: "https://techcrunch.com/feed/", Tags: "Startups,VC", Weight: 1.0, Active: true},
	{Name: "Linux Do (Develop)", Type: SourceRSS, URL: "https://linux.do/c/develop/4.rss", Tags: "Community,Engineering", Weight: 0.9, Active: true},
	{Name: "V2EX Tech", Type: SourceRSS, URL: "https://www.v2ex.com/feed/tab/tech.xml", Tags: "Community,China", Weight: 0.9, Active: true},
	{Name: "The Verge", Type: SourceRSS, URL: "https://www.theverge.com/rss/index.xml", Tags: "Gadgets,Product", Weight: 0.9, Active: true},
	{Name: "Ars Technica", Type: SourceRSS, URL: "https://feeds.arstechnica.com/arstechnica/index", Tags: "Engineering,Science", Weight: 1.0, Active: true},
	{Name: "Medium Tech", Type: SourceMedium, URL: "https://medium.com/feed/tag/technology", Tags: "Opinion,Blogs", Weight: 0.8, Active: true},
	{Name: "Substack: The Pragmatic Engineer", Type: SourceSubstack, URL: "https://newsletter.pragmaticengineer.com/feed", Tags: "Engineering,Leadership", Weight: 0.9, Active: true},
	{Name: "YouTube Tech", Type: SourceYouTube, Handle: "software engineering", Tags: "Video", RequiresAuth: true, Weight: 0.8, Active: true},
	{Name: "X Tech", Type: SourceX, Handle: "tech news", Tags: "Social", RequiresAuth: true, Weight: 0.7, Active: true},
}
