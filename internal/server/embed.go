package server

import (
	"fmt"
	"net/http"
)

// handleEmbedJS serves the drop-in embed script.
func (s *Server) handleEmbedJS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Determine server URL from request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	serverURL := fmt.Sprintf("%s://%s", scheme, r.Host)

	script := GenerateEmbedScript(serverURL)

	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Write([]byte(script))
}

// GenerateEmbedScript generates the embed script that fills every
// [data-dxab-banner] element from the banner API. Assignment and event
// dedup ride on the visitor's cookies, so the script itself stays
// stateless.
func GenerateEmbedScript(serverURL string) string {
	return fmt.Sprintf(`(function(){
  var S='%s';

  function render(el,b){
    var c=b.content;
    el.innerHTML='';
    var sec=document.createElement('section');
    sec.setAttribute('data-variant',b.variant);
    sec.style.cssText='position:relative;overflow:hidden';
    if(c.imageUrl){
      var img=document.createElement('img');
      img.src=c.imageUrl.indexOf('://')>0?c.imageUrl:S+c.imageUrl;
      img.alt=c.imageAlt;
      img.style.cssText='display:block;width:100%%;object-fit:cover;'+c.style;
      sec.appendChild(img);
    }
    var copy=document.createElement('div');
    copy.style.cssText='position:absolute;inset:0;display:flex;flex-direction:column;justify-content:center;align-items:center;text-align:center';
    if(c.title){var h=document.createElement('h1');h.textContent=c.title;copy.appendChild(h)}
    if(c.description){var p=document.createElement('p');p.textContent=c.description;copy.appendChild(p)}
    if(c.buttonLabel){
      var a=document.createElement('a');
      a.href=S+b.clickUrl;
      a.textContent=c.buttonLabel;
      copy.appendChild(a);
    }
    sec.appendChild(copy);
    el.appendChild(sec);
  }

  document.querySelectorAll('[data-dxab-banner]').forEach(function(el){
    fetch(S+'/api/banner',{credentials:'include'})
      .then(function(r){return r.json()})
      .then(function(b){render(el,b)})
      .catch(function(){});
  });
})();`, serverURL)
}
