package render

// baseStyles is the layout stylesheet shared by every theme. Theme CSS
// supplies the color variables these rules consume.
const baseStyles = `
body {
  background-color: var(--background-secondary);
}
.transcript {
  max-width: 820px;
  margin: 0 auto;
  padding: 2rem 1rem 4rem;
}
.header {
  margin-bottom: 1.5rem;
}
.controls {
  display: flex;
  gap: 0.75rem;
  flex-wrap: wrap;
  margin-bottom: 1rem;
}
.controls input[type="search"] {
  flex: 1;
  padding: 0.5rem 0.75rem;
  border-radius: 6px;
  border: 1px solid var(--interactive-hover);
  background: var(--background-secondary-alt);
  color: inherit;
}
.message {
  display: grid;
  grid-template-columns: 56px 1fr;
  gap: 0.75rem;
  padding: 0.5rem 1rem;
  border-radius: 8px;
}
.messages-fallback {
  display: block;
}
.messages-fallback--hidden {
  display: block;
}
body.skyra-components-ready .messages-fallback--hidden {
  display: none;
}
.message:hover {
  background: var(--background-secondary-alt);
}
.avatar img {
  width: 42px;
  height: 42px;
  border-radius: 50%;
}
.author-name {
  font-weight: 600;
}
.author-badge {
  display: inline-flex;
  align-items: center;
  padding: 0 0.4rem;
  margin-left: 0.4rem;
  border-radius: 4px;
  background: #5865f2;
  color: white;
  font-size: 0.65rem;
  text-transform: uppercase;
}
.timestamp {
  margin-left: 0.5rem;
  color: var(--text-muted);
  font-size: 0.75rem;
}
.message-content p {
  margin: 0.2rem 0;
  line-height: 1.45;
}
.message-content code {
  background: rgba(79, 84, 92, 0.24);
  padding: 0.1rem 0.3rem;
  border-radius: 4px;
}
.message-reactions {
  display: flex;
  gap: 0.25rem;
  margin-top: 0.4rem;
}
.reaction {
  display: inline-flex;
  align-items: center;
  gap: 0.25rem;
  padding: 0.25rem 0.5rem;
  background: var(--background-secondary-alt);
  border-radius: 16px;
}
.attachments {
  display: grid;
  gap: 0.4rem;
  margin-top: 0.4rem;
}
.attachment-image img {
  max-width: 480px;
  border-radius: 8px;
}
.embed {
  border-left: 4px solid #5865f2;
  background: rgba(46, 48, 54, 0.4);
  padding: 0.6rem;
  border-radius: 4px;
  margin-top: 0.4rem;
}
.embed-title {
  font-weight: 600;
  margin-bottom: 0.25rem;
}
.embed-field {
  margin-top: 0.25rem;
}
.embed-field.inline {
  display: inline-block;
  min-width: 160px;
  margin-right: 1rem;
}
.day-divider {
  display: flex;
  align-items: center;
  color: var(--text-muted);
  font-size: 0.75rem;
  text-transform: uppercase;
  gap: 0.5rem;
  margin: 1.5rem 0;
}
.day-divider::before,
.day-divider::after {
  content: "";
  flex: 1;
  height: 1px;
  background: var(--interactive-hover);
}
.spoiler {
  background: var(--background-secondary-alt);
  color: transparent;
  border-radius: 4px;
  padding: 0 0.4rem;
  transition: color 0.2s ease;
}
.spoiler:hover {
  color: inherit;
}
.mention {
  padding: 0.1rem 0.3rem;
  background: var(--mention-background);
  border-radius: 3px;
  border: 1px solid var(--mention-border);
  color: #ebeef9;
}
.component-builder {
  display: grid;
  gap: 0.75rem;
  margin-top: 0.75rem;
  padding: 0.75rem;
  border-radius: 8px;
  border: 1px solid var(--interactive-hover);
  background: var(--background-secondary-alt);
}
body.skyra-components-ready .component-builder[data-hidden="true"] {
  display: none;
}
.component-builder__row {
  border-radius: 6px;
  border: 1px solid var(--interactive-hover);
  background: var(--background-secondary);
  overflow: hidden;
}
.component-builder__row-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  gap: 0.4rem;
  padding: 0.45rem 0.6rem;
  border-bottom: 1px solid rgba(78, 80, 88, 0.45);
  text-transform: uppercase;
  font-size: 0.7rem;
  letter-spacing: 0.04em;
  color: var(--text-muted);
}
.component-builder__grip {
  cursor: grab;
  opacity: 0.5;
  font-size: 0.85rem;
}
.component-builder__row-title {
  flex: 1;
  font-weight: 600;
}
.component-builder__row-actions {
  opacity: 0.5;
  cursor: pointer;
}
.component-builder__row-body {
  display: flex;
  flex-wrap: wrap;
  gap: 0.45rem;
  padding: 0.6rem;
}
.component-builder__row--select .component-builder__row-body {
  flex-direction: column;
  align-items: stretch;
}
.component-button {
  display: inline-flex;
  align-items: center;
  gap: 0.3rem;
  padding: 0.45rem 0.9rem;
  border-radius: 6px;
  font-weight: 600;
  font-size: 0.85rem;
  border: none;
  cursor: pointer;
  background: #4f545c;
  color: #fff;
  text-decoration: none;
  transition: filter 0.15s ease;
}
.component-button:hover {
  filter: brightness(1.1);
}
.component-button--primary {
  background: #5865f2;
}
.component-button--secondary {
  background: #4f545c;
}
.component-button--success {
  background: #3ba55c;
}
.component-button--danger {
  background: #ed4245;
}
.component-button--link {
  background: transparent;
  color: #00aff4;
  text-decoration: underline;
}
.component-button[aria-disabled="true"] {
  opacity: 0.6;
  cursor: not-allowed;
}
.component-emoji {
  font-size: 1rem;
}
.component-text-input {
  display: flex;
  flex-direction: column;
  gap: 0.35rem;
  padding: 0.5rem 0.6rem;
  border-radius: 6px;
  background: var(--background-secondary-alt);
  border: 1px solid var(--interactive-hover);
}
.component-text-input input {
  padding: 0.45rem 0.5rem;
  border-radius: 4px;
  border: 1px solid var(--interactive-hover);
  background: var(--background-secondary);
  color: inherit;
}
.component-builder__text {
  padding: 0.45rem 0.6rem;
  border-radius: 6px;
  background: var(--background-secondary);
  border: 1px solid var(--interactive-hover);
  color: var(--text-muted);
  font-size: 0.8rem;
  line-height: 1.4;
  white-space: pre-wrap;
}
.component-builder__text--error {
  color: #f23f43;
  border-color: rgba(242, 63, 67, 0.6);
  background: rgba(242, 63, 67, 0.1);
}
.component-select-card {
  border: 1px solid var(--interactive-hover);
  border-radius: 6px;
  background: var(--background-secondary);
  display: grid;
  gap: 0.45rem;
  padding: 0.5rem 0.6rem;
}
.component-select-card__header {
  display: flex;
  justify-content: space-between;
  align-items: center;
  font-size: 0.75rem;
  text-transform: uppercase;
  letter-spacing: 0.03em;
  color: var(--text-muted);
}
.component-select-card__title {
  font-weight: 600;
}
.component-select-card__meta {
  background: var(--background-secondary-alt);
  padding: 0.15rem 0.45rem;
  border-radius: 999px;
  font-size: 0.7rem;
}
.component-select-card__options {
  display: grid;
  gap: 0.35rem;
}
.component-select-option {
  border: 1px solid transparent;
  border-radius: 6px;
  padding: 0.5rem 0.6rem;
  background: var(--background-secondary-alt);
  transition: background 0.15s ease, border 0.15s ease;
}
.component-select-option.is-selected {
  border-color: #5865f2;
  background: rgba(88, 101, 242, 0.2);
}
.component-select-option__content {
  display: flex;
  flex-direction: column;
  gap: 0.2rem;
}
.component-select-option__label {
  font-weight: 600;
  font-size: 0.85rem;
}
.component-select-option__description {
  margin-top: 0.15rem;
  font-size: 0.75rem;
  color: var(--text-muted);
}
.component-file-card {
  display: flex;
  align-items: center;
  gap: 0.5rem;
  padding: 0.6rem;
  border-radius: 6px;
  background: var(--background-secondary);
  border: 1px solid var(--interactive-hover);
}
.component-file-card__link {
  color: #00aff4;
  text-decoration: underline;
  word-break: break-all;
}
.component-media-panel {
  display: grid;
  gap: 0.5rem;
}
.component-media-gallery {
  display: flex;
  gap: 0.5rem;
  flex-wrap: wrap;
}
.component-media {
  border-radius: 6px;
  overflow: hidden;
  border: 1px solid var(--interactive-hover);
  background: var(--background-secondary);
}
.component-media img {
  display: block;
  max-width: 150px;
  height: auto;
}
.component-unknown {
  padding: 0.4rem 0.75rem;
  border-radius: 6px;
  background: var(--background-secondary-alt);
  color: var(--text-muted);
  font-size: 0.75rem;
}
`

// transcriptScript implements the client-side search filter and
// pagination over the fallback message articles.
const transcriptScript = `
(() => {
  const searchInput = document.querySelector('[data-search]');
  const messages = Array.from(document.querySelectorAll('.message'));
  const counter = document.querySelector('[data-results-count]');
  const paginationSize = Number(document.body.dataset.paginationSize || 0);
  const paginator = document.querySelector('[data-paginator]');
  const pageInfo = document.querySelector('[data-page-info]');
  let currentPage = 0;

  function applySearch() {
    const term = (searchInput && searchInput.value ? searchInput.value : "")
      .toLowerCase()
      .trim();
    messages.forEach((msg) => {
      const textContent = msg.textContent ? msg.textContent.toLowerCase() : "";
      const matches = term ? textContent.includes(term) : true;
      msg.dataset.match = matches ? "1" : "0";
    });
    updatePagination();
  }

  function updatePagination() {
    const activeMessages = messages.filter((msg) => msg.dataset.match !== "0");
    if (!paginationSize || activeMessages.length <= paginationSize) {
      activeMessages.forEach((msg) => {
        msg.style.display = "";
      });
      messages
        .filter((msg) => msg.dataset.match === "0")
        .forEach((msg) => {
          msg.style.display = "none";
        });
      if (paginator) paginator.style.display = "none";
      if (counter) counter.textContent = String(activeMessages.length);
      return;
    }
    if (paginator) paginator.style.display = "";
    const pages = Math.ceil(activeMessages.length / paginationSize);
    if (currentPage >= pages) currentPage = pages - 1;
    if (currentPage < 0) currentPage = 0;
    activeMessages.forEach((msg, index) => {
      const pageIndex = Math.floor(index / paginationSize);
      msg.style.display = pageIndex === currentPage ? "" : "none";
    });
    if (counter) counter.textContent = String(activeMessages.length);
    if (pageInfo) pageInfo.textContent = "Page " + (currentPage + 1) + " / " + pages;
  }

  document.addEventListener("click", (event) => {
    const target = event.target;
    if (!target || !(target instanceof HTMLElement)) return;
    if (target.matches('[data-action="prev"]')) {
      currentPage -= 1;
      updatePagination();
    } else if (target.matches('[data-action="next"]')) {
      currentPage += 1;
      updatePagination();
    }
  });

  if (searchInput) {
    searchInput.addEventListener("input", () => {
      currentPage = 0;
      applySearch();
    });
  }

  applySearch();
})();
`

// skyraLoaderScript upgrades the discord-components custom elements from
// a CDN. On success the body gets the skyra-components-ready class and
// the fallback rendering is hidden; on failure the document stays on the
// fallback rendering with no visible difference.
const skyraLoaderScript = `
(async () => {
  try {
    let loaded = false;
    const entries = ["https://unpkg.com/@skyra/discord-components-core@4?module"];
    for (const url of entries) {
      try { await import(url); loaded = true; break; } catch (e) { console.warn('entry import failed', url, e); }
    }
    document.addEventListener('DOMContentLoaded', () => {
      if (customElements.get('discord-message')) document.body.classList.add('skyra-components-ready');
      else document.body.classList.remove('skyra-components-ready');
    });
    if (!loaded) console.warn('component library load failed');
  } catch (e) { console.error(e); }
})();
`
