package browser

// instrumentScript installs the page-side observers. Each entry type
// gets its own PerformanceObserver so one unsupported type cannot take
// down the rest; the supported map records which registrations took.
// Entries accumulate in per-type buffers until the session drains them.
const instrumentScript = `
(function() {
	if (window.__webtop) return window.__webtop.supported;

	var state = {
		supported: {},
		buffers: {
			'largest-contentful-paint': [],
			'layout-shift': [],
			'first-input': [],
			'event': []
		}
	};
	window.__webtop = state;

	function push(type, entry) {
		var buf = state.buffers[type];
		if (buf.length < 500) buf.push(entry);
	}

	function observe(type, opts, map) {
		try {
			var po = new PerformanceObserver(function(list) {
				list.getEntries().forEach(function(e) {
					push(type, map(e));
				});
			});
			po.observe(opts);
			state.supported[type] = true;
		} catch (err) {
			state.supported[type] = false;
		}
	}

	observe('largest-contentful-paint', {type: 'largest-contentful-paint', buffered: true}, function(e) {
		return {
			type: 'largest-contentful-paint',
			startTime: e.startTime,
			renderTime: e.renderTime || 0,
			loadTime: e.loadTime || 0
		};
	});

	observe('layout-shift', {type: 'layout-shift', buffered: true}, function(e) {
		return {
			type: 'layout-shift',
			startTime: e.startTime,
			value: e.value,
			hadRecentInput: !!e.hadRecentInput
		};
	});

	observe('first-input', {type: 'first-input', buffered: true}, function(e) {
		return {
			type: 'first-input',
			startTime: e.startTime,
			duration: e.duration,
			processingStart: e.processingStart
		};
	});

	observe('event', {type: 'event', buffered: true, durationThreshold: 40}, function(e) {
		return {
			type: 'event',
			startTime: e.startTime,
			duration: e.duration
		};
	});

	return state.supported;
})()
`

// drainScript empties one entry-type buffer and returns its contents.
// %q-substituted with the entry type.
const drainScript = `
(function(type) {
	var state = window.__webtop;
	if (!state || !state.buffers[type]) return [];
	return state.buffers[type].splice(0, state.buffers[type].length);
})(%q)
`

// navigationScript reads the page's navigation-timing record.
const navigationScript = `
(function() {
	var entry = performance.getEntriesByType('navigation')[0];
	if (!entry) return null;
	return {
		requestStart: entry.requestStart,
		responseStart: entry.responseStart,
		domContentLoadedEventEnd: entry.domContentLoadedEventEnd,
		loadEventEnd: entry.loadEventEnd,
		transferSize: entry.transferSize
	};
})()
`

// resourcesScript reads all resource-timing records.
const resourcesScript = `
(function() {
	return performance.getEntriesByType('resource').map(function(e) {
		return {
			name: e.name,
			initiatorType: e.initiatorType,
			transferSize: e.transferSize,
			duration: e.duration
		};
	});
})()
`

// statsScript counts document elements. Only images with no alt
// attribute at all count as missing; alt="" is valid markup for
// decorative images.
const statsScript = `
(function() {
	return {
		total_nodes: document.getElementsByTagName('*').length,
		images: document.querySelectorAll('img').length,
		scripts: document.querySelectorAll('script').length,
		stylesheets: document.querySelectorAll('link[rel="stylesheet"], style').length,
		images_missing_alt: document.querySelectorAll('img:not([alt])').length
	};
})()
`
